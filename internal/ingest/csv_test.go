package ingest

import (
	"strings"
	"testing"
)

func TestParseStopsSemicolonDelimited(t *testing.T) {
	data := []byte("nombre;direccion;localidad;peso;volumen\n" +
		"Cliente 1;Calle 45 #13-20;Chapinero;120;1,5\n" +
		"Cliente 2;Carrera 15 #85-10;Usaquén;80;0.8\n")

	stops, err := ParseStops(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(stops))
	}

	first := stops[0]
	if first.Name != "Cliente 1" || first.Address != "Calle 45 #13-20" || first.Locality != "Chapinero" {
		t.Fatalf("unexpected first stop: %+v", first)
	}
	if first.WeightKg != 120 {
		t.Fatalf("expected weight 120, got %f", first.WeightKg)
	}
	// Decimal comma is the dispatcher's export format.
	if first.VolumeM3 != 1.5 {
		t.Fatalf("expected volume 1.5, got %f", first.VolumeM3)
	}
	if stops[1].VolumeM3 != 0.8 {
		t.Fatalf("expected volume 0.8, got %f", stops[1].VolumeM3)
	}
}

func TestParseStopsCommaDelimited(t *testing.T) {
	data := []byte("nombre,direccion,lat,lng\n" +
		"Cliente 1,Calle 45,4.6482,-74.0631\n")

	stops, err := ParseStops(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 1 {
		t.Fatalf("expected 1 stop, got %d", len(stops))
	}
	if stops[0].Lat != 4.6482 || stops[0].Lng != -74.0631 {
		t.Fatalf("unexpected coordinates: %+v", stops[0])
	}
}

func TestParseStopsHeaderCaseInsensitive(t *testing.T) {
	data := []byte("Nombre;Direccion\nCliente 1;Calle 45\n")

	stops, err := ParseStops(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stops[0].Name != "Cliente 1" {
		t.Fatalf("unexpected stop: %+v", stops[0])
	}
}

func TestParseStopsOptionalFieldsDefaultToZero(t *testing.T) {
	data := []byte("nombre;direccion;peso\nCliente 1;Calle 45;\n")

	stops, err := ParseStops(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stops[0].WeightKg != 0 || stops[0].VolumeM3 != 0 {
		t.Fatalf("expected zero defaults, got %+v", stops[0])
	}
}

func TestParseStopsMissingRequiredColumn(t *testing.T) {
	data := []byte("nombre;peso\nCliente 1;120\n")

	if _, err := ParseStops(data); err == nil {
		t.Fatalf("expected error for missing direccion column")
	}
}

func TestParseStopsEmptyRequiredField(t *testing.T) {
	data := []byte("nombre;direccion\nCliente 1;\n")

	_, err := ParseStops(data)
	if err == nil {
		t.Fatalf("expected error for empty direccion")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("expected error to name the row, got %v", err)
	}
}

func TestParseStopsRejectsNegativeLoad(t *testing.T) {
	data := []byte("nombre;direccion;peso\nCliente 1;Calle 45;-5\n")

	if _, err := ParseStops(data); err == nil {
		t.Fatalf("expected error for negative peso")
	}
}

func TestParseStopsInvalidNumber(t *testing.T) {
	data := []byte("nombre;direccion;peso\nCliente 1;Calle 45;mucho\n")

	_, err := ParseStops(data)
	if err == nil {
		t.Fatalf("expected error for non-numeric peso")
	}
	if !strings.Contains(err.Error(), "peso") {
		t.Fatalf("expected error to name the column, got %v", err)
	}
}

func TestParseStopsEmptyFile(t *testing.T) {
	if _, err := ParseStops(nil); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestParseStopsRowLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("nombre;direccion\n")
	for i := 0; i <= MaxStops; i++ {
		b.WriteString("Cliente;Calle 45\n")
	}

	if _, err := ParseStops([]byte(b.String())); err == nil {
		t.Fatalf("expected error above the row limit")
	}
}
