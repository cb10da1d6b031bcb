// Package validation checks and coerces raw commande payloads into typed
// inputs, collecting every field violation instead of stopping at the first.
package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"suivi-chargements/internal/domain"
)

// FieldError scopes one human-readable violation to a payload field.
type FieldError struct {
	Field   string
	Message string
}

// Error aggregates all field violations of one payload.
type Error struct {
	Fields []FieldError
}

// Error joins every field violation into a single message, the shape clients
// display as-is.
func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s at %q", f.Message, f.Field)
	}
	return "Validation error: " + strings.Join(parts, "; ")
}

// dateLayouts are the calendar formats accepted for date fields. The original
// string is kept verbatim once it parses.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate reports whether the value parses as a calendar date.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CoerceNumber converts a raw JSON value (string or numeric) to a float.
func CoerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FormatDecimal renders a coerced number back to its canonical string form,
// the representation the datastore keeps for decimal columns.
func FormatDecimal(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// ParseCommande validates and coerces an arbitrary payload into a typed
// CommandeInput. On failure it returns a *validation.Error listing every
// violated field.
func ParseCommande(raw map[string]any) (domain.CommandeInput, error) {
	var (
		input domain.CommandeInput
		errs  []FieldError
	)

	fail := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	text := func(field, requiredMsg string) string {
		value, _ := raw[field].(string)
		if value == "" {
			fail(field, requiredMsg)
		}
		return value
	}

	date := func(field, requiredMsg, invalidMsg string) string {
		value, ok := raw[field].(string)
		if !ok || value == "" {
			fail(field, requiredMsg)
			return ""
		}
		if _, ok := ParseDate(value); !ok {
			fail(field, invalidMsg)
			return ""
		}
		return value
	}

	positive := func(field, message string) string {
		value, ok := CoerceNumber(raw[field])
		if !ok || value <= 0 {
			fail(field, message)
			return ""
		}
		return FormatDecimal(value)
	}

	input.Client = text("client", "Le client est requis")
	input.NumeroBonCommande = text("numeroBonCommande", "Le numéro de bon de commande est requis")
	input.DateLivraison = date("dateLivraison", "La date de livraison est requise", "Date de livraison invalide")
	input.Depot = text("depot", "Le dépôt est requis")
	input.Camion = text("camion", "Le camion est requis")
	input.Quantite = positive("quantite", "La quantité doit être positive")

	if produit, ok := raw["produit"].(string); ok && validProduit(produit) {
		input.Produit = domain.Produit(produit)
	} else {
		fail("produit", enumMessage(produitValues(), raw["produit"]))
	}

	input.Fournisseur = text("fournisseur", "Le fournisseur est requis")
	input.DateChargement = date("dateChargement", "La date de chargement est requise", "Date de chargement invalide")

	if statut, ok := raw["statut"].(string); ok && validStatut(statut) {
		input.Statut = domain.Statut(statut)
	} else {
		fail("statut", enumMessage(statutValues(), raw["statut"]))
	}

	input.Transporteur = text("transporteur", "Le transporteur est requis")
	input.Destination = text("destination", "La destination est requise")
	input.TauxTransport = positive("tauxTransport", "Le taux de transport doit être positif")

	if len(errs) > 0 {
		return domain.CommandeInput{}, &Error{Fields: errs}
	}
	return input, nil
}

func validProduit(value string) bool {
	for _, p := range domain.Produits {
		if string(p) == value {
			return true
		}
	}
	return false
}

func validStatut(value string) bool {
	for _, s := range domain.Statuts {
		if string(s) == value {
			return true
		}
	}
	return false
}

func produitValues() []string {
	values := make([]string, len(domain.Produits))
	for i, p := range domain.Produits {
		values[i] = string(p)
	}
	return values
}

func statutValues() []string {
	values := make([]string, len(domain.Statuts))
	for i, s := range domain.Statuts {
		values[i] = string(s)
	}
	return values
}

func enumMessage(allowed []string, received any) string {
	quoted := make([]string, len(allowed))
	for i, v := range allowed {
		quoted[i] = "'" + v + "'"
	}
	got := "''"
	if s, ok := received.(string); ok {
		got = "'" + s + "'"
	}
	return fmt.Sprintf("Invalid enum value. Expected %s, received %s", strings.Join(quoted, " | "), got)
}
