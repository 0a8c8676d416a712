package stockops

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// El backend de stock no emite códigos de error estables: el rechazo llega como
// payload sin tipar con un mensaje en texto. La clasificación es una lista
// ordenada de (patrón, formateador) evaluada de arriba hacia abajo con fallback
// garantizado. Fragilidad conocida: si el upstream cambia la redacción, la
// clasificación degrada silenciosamente al fallback.

var insufficientStockRe = regexp.MustCompile(`Available:\s*([0-9]+(?:[.,][0-9]+)?),\s*Required:\s*([0-9]+(?:[.,][0-9]+)?)`)

// submitErrorRule un patrón de clasificación: format devuelve el mensaje de
// usuario y true cuando el patrón aplica; false cede el turno a la siguiente regla.
type submitErrorRule struct {
	format func(payload string) (string, bool)
}

var submitErrorRules = []submitErrorRule{
	// Stock insuficiente con cantidades extraíbles. Si el payload menciona
	// "Insufficient stock" pero sin el patrón Available/Required, la regla
	// no aplica y se sigue con la siguiente.
	{format: func(p string) (string, bool) {
		if !strings.Contains(p, "Insufficient stock") {
			return "", false
		}
		m := insufficientStockRe.FindStringSubmatch(p)
		if m == nil {
			return "", false
		}
		return fmt.Sprintf("Stock insuficiente. Disponible: %s, Requerido: %s", m[1], m[2]), true
	}},
	// Recurso inexistente.
	{format: func(p string) (string, bool) {
		if !strings.Contains(strings.ToLower(p), "not found") {
			return "", false
		}
		return "nomenclatura o bodega no encontrada", true
	}},
	// Fallback: mensaje crudo del servidor si existe, si no uno genérico.
	{format: func(p string) (string, bool) {
		if msg := rawServerMessage(p); msg != "" {
			return msg, true
		}
		return "error al crear la operación", true
	}},
}

// ClassifySubmitError convierte el payload de rechazo del backend en un
// mensaje apto para el usuario. Nunca falla: la última regla siempre aplica.
func ClassifySubmitError(payload string) string {
	for _, r := range submitErrorRules {
		if msg, ok := r.format(payload); ok {
			return msg
		}
	}
	return "error al crear la operación" // inalcanzable, el fallback siempre aplica
}

// rawServerMessage intenta desenvolver el mensaje de un payload JSON
// ({"detail": ...} o {"message": ...}); si no es JSON devuelve el texto tal cual.
func rawServerMessage(payload string) string {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return ""
	}
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(payload), &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return payload
}
