package stats

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domstats "github.com/tu-usuario/sklad-pro/internal/domain/stats"
	"github.com/tu-usuario/sklad-pro/pkg/logger"
)

// Snapshot resultado de un pase de agregación para un alcance.
type Snapshot struct {
	Totals     domstats.Totals
	ComputedAt time.Time
	seq        uint64
}

// Recomputer coordina los recálculos completos de estadísticas. Cada mutación
// de documentos, nomenclatura u operaciones dispara un pase nuevo; si un pase
// viejo termina después que uno más nuevo, su resultado se descarta
// (last-write-wins por número de secuencia, sin cancelar el pase en vuelo).
type Recomputer struct {
	agg     *Aggregator
	log     *logger.Logger
	timeout time.Duration // límite por pase en segundo plano

	seq    atomic.Uint64
	mu     sync.RWMutex
	latest map[string]Snapshot // clave de alcance -> último resultado publicado

	inFlight atomic.Int64
}

// NewRecomputer construye el coordinador. timeout cero usa 30s.
func NewRecomputer(agg *Aggregator, log *logger.Logger, timeout time.Duration) *Recomputer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Recomputer{agg: agg, log: log, timeout: timeout, latest: make(map[string]Snapshot)}
}

// Claves de alcance.
func WarehouseScope(id string) string    { return "warehouse:" + id }
func OrganizationScope(id string) string { return "organization:" + id }

// TriggerWarehouse lanza en background un recálculo completo de la bodega.
func (r *Recomputer) TriggerWarehouse(warehouseID string) {
	seq := r.seq.Add(1)
	r.inFlight.Add(1)
	go func() {
		defer r.inFlight.Add(-1)
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		totals := r.agg.ForWarehouse(ctx, warehouseID)
		r.publish(WarehouseScope(warehouseID), seq, totals)
	}()
}

// TriggerOrganization lanza en background un recálculo completo de la organización.
func (r *Recomputer) TriggerOrganization(organizationID string) {
	seq := r.seq.Add(1)
	r.inFlight.Add(1)
	go func() {
		defer r.inFlight.Add(-1)
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		totals, err := r.agg.ForOrganization(ctx, organizationID)
		if err != nil {
			r.log.Warn().Err(err).Str("organization_id", organizationID).
				Msg("estadísticas: recálculo de organización falló, se conserva el último valor")
			return
		}
		r.publish(OrganizationScope(organizationID), seq, totals)
	}()
}

// ComputeWarehouse calcula de forma síncrona y publica el resultado.
func (r *Recomputer) ComputeWarehouse(ctx context.Context, warehouseID string) Snapshot {
	seq := r.seq.Add(1)
	totals := r.agg.ForWarehouse(ctx, warehouseID)
	return r.publish(WarehouseScope(warehouseID), seq, totals)
}

// ComputeOrganization calcula de forma síncrona y publica el resultado.
func (r *Recomputer) ComputeOrganization(ctx context.Context, organizationID string) (Snapshot, error) {
	seq := r.seq.Add(1)
	totals, err := r.agg.ForOrganization(ctx, organizationID)
	if err != nil {
		return Snapshot{}, err
	}
	return r.publish(OrganizationScope(organizationID), seq, totals), nil
}

// Latest devuelve el último resultado publicado para el alcance, si existe.
func (r *Recomputer) Latest(scope string) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.latest[scope]
	return s, ok
}

// Recomputing reporta si hay algún pase en vuelo (indicador "stale" en la UI).
func (r *Recomputer) Recomputing() bool {
	return r.inFlight.Load() > 0
}

// publish guarda el resultado solo si el pase es más nuevo que el publicado;
// un pase rezagado nunca pisa a uno más reciente. Devuelve lo que quedó
// publicado para el alcance.
func (r *Recomputer) publish(scope string, seq uint64, totals domstats.Totals) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.latest[scope]
	if ok && cur.seq > seq {
		return cur
	}
	snap := Snapshot{Totals: totals, ComputedAt: time.Now(), seq: seq}
	r.latest[scope] = snap
	return snap
}
