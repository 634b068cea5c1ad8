package production

import (
	"reflect"
	"testing"
)

func TestToggle_SumaYCrea(t *testing.T) {
	venta1 := []SaleLine{{ProductoID: 1, Nombre: "Torta", Cantidad: 2}, {ProductoID: 2, Nombre: "Galletas", Cantidad: 5}}
	venta2 := []SaleLine{{ProductoID: 2, Nombre: "Galletas", Cantidad: 3}, {ProductoID: 3, Nombre: "Brownie", Cantidad: 1}}

	agg := Toggle(nil, venta1, true)
	agg = Toggle(agg, venta2, true)

	want := []Entry{
		{ProductoID: 1, Nombre: "Torta", Cantidad: 2},
		{ProductoID: 2, Nombre: "Galletas", Cantidad: 8},
		{ProductoID: 3, Nombre: "Brownie", Cantidad: 1},
	}
	if !reflect.DeepEqual(agg, want) {
		t.Errorf("agregado = %+v, esperado %+v", agg, want)
	}
}

func TestToggle_DesmarcarRestauraExacto(t *testing.T) {
	venta1 := []SaleLine{{ProductoID: 1, Nombre: "Torta", Cantidad: 2}, {ProductoID: 2, Nombre: "Galletas", Cantidad: 5}}
	venta2 := []SaleLine{{ProductoID: 2, Nombre: "Galletas", Cantidad: 3}, {ProductoID: 3, Nombre: "Brownie", Cantidad: 1}}

	antes := Toggle(nil, venta1, true)

	// Marcar y desmarcar venta2 debe devolver el agregado byte a byte.
	agg := Toggle(antes, venta2, true)
	agg = Toggle(agg, venta2, false)
	if !reflect.DeepEqual(agg, antes) {
		t.Errorf("tras marcar y desmarcar: %+v, esperado %+v", agg, antes)
	}

	// También repetido varias veces.
	for i := 0; i < 3; i++ {
		agg = Toggle(agg, venta2, true)
		agg = Toggle(agg, venta2, false)
	}
	if !reflect.DeepEqual(agg, antes) {
		t.Errorf("tras varios ciclos: %+v, esperado %+v", agg, antes)
	}
}

func TestToggle_EntradaEnCeroDesaparece(t *testing.T) {
	venta := []SaleLine{{ProductoID: 1, Nombre: "Torta", Cantidad: 2}}

	agg := Toggle(nil, venta, true)
	agg = Toggle(agg, venta, false)
	if len(agg) != 0 {
		t.Errorf("el agregado debería quedar vacío: %+v", agg)
	}

	// Restar más de lo aportado tampoco deja negativos.
	agg = Toggle(nil, venta, true)
	agg = Toggle(agg, []SaleLine{{ProductoID: 1, Cantidad: 5}}, false)
	if len(agg) != 0 {
		t.Errorf("una entrada negativa debe eliminarse: %+v", agg)
	}
}

func TestToggle_DesmarcarVentaNoMarcadaEsInofensivo(t *testing.T) {
	venta1 := []SaleLine{{ProductoID: 1, Nombre: "Torta", Cantidad: 2}}
	otra := []SaleLine{{ProductoID: 9, Nombre: "Flan", Cantidad: 4}}

	antes := Toggle(nil, venta1, true)
	agg := Toggle(antes, otra, false)
	if !reflect.DeepEqual(agg, antes) {
		t.Errorf("desmarcar una venta ajena no debe cambiar nada: %+v", agg)
	}
}

func TestToggle_NoMutaEntrada(t *testing.T) {
	venta := []SaleLine{{ProductoID: 1, Cantidad: 2}}
	antes := Toggle(nil, venta, true)
	copia := append([]Entry(nil), antes...)

	_ = Toggle(antes, venta, true)
	if !reflect.DeepEqual(antes, copia) {
		t.Errorf("el agregado de entrada no debe mutar: %+v", antes)
	}
}

func TestToggle_ConservaOrdenDeInsercion(t *testing.T) {
	agg := Toggle(nil, []SaleLine{{ProductoID: 5, Cantidad: 1}}, true)
	agg = Toggle(agg, []SaleLine{{ProductoID: 2, Cantidad: 1}}, true)
	agg = Toggle(agg, []SaleLine{{ProductoID: 8, Cantidad: 1}}, true)

	ids := []uint{agg[0].ProductoID, agg[1].ProductoID, agg[2].ProductoID}
	if !reflect.DeepEqual(ids, []uint{5, 2, 8}) {
		t.Errorf("orden = %v, esperado [5 2 8]", ids)
	}
}
