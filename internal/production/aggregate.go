package production

// Consolidación de necesidades de producción: al marcar una venta, sus
// cantidades por producto se suman al agregado; al desmarcarla, se restan.
// Marcar y desmarcar la misma venta deja el agregado exactamente como estaba.

// SaleLine es lo que aporta cada línea de una venta al agregado.
type SaleLine struct {
	ProductoID uint
	Nombre     string
	Cantidad   int
}

// Entry es una fila del agregado. El orden de inserción se conserva para que
// la pantalla no reordene la lista mientras el usuario marca ventas.
type Entry struct {
	ProductoID uint
	Nombre     string
	Cantidad   int
}

// Toggle aplica el marcado o desmarcado de una venta y devuelve el agregado
// resultante. No muta el slice de entrada.
func Toggle(entries []Entry, lines []SaleLine, checked bool) []Entry {
	if checked {
		return add(entries, lines)
	}
	return remove(entries, lines)
}

func add(entries []Entry, lines []SaleLine) []Entry {
	out := append([]Entry(nil), entries...)
	for _, l := range lines {
		found := false
		for i := range out {
			if out[i].ProductoID == l.ProductoID {
				out[i].Cantidad += l.Cantidad
				found = true
				break
			}
		}
		if !found {
			out = append(out, Entry{ProductoID: l.ProductoID, Nombre: l.Nombre, Cantidad: l.Cantidad})
		}
	}
	return out
}

// remove resta las cantidades aportadas; una entrada que llega a cero o menos
// desaparece, nunca queda en cero ni en negativo.
func remove(entries []Entry, lines []SaleLine) []Entry {
	out := append([]Entry(nil), entries...)
	for _, l := range lines {
		for i := range out {
			if out[i].ProductoID == l.ProductoID {
				out[i].Cantidad -= l.Cantidad
				if out[i].Cantidad <= 0 {
					out = append(out[:i], out[i+1:]...)
				}
				break
			}
		}
	}
	return out
}
