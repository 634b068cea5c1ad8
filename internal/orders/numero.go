package orders

import (
	"crypto/rand"
	"math/big"
)

const numeroAlfabeto = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerarNumeroPedido produce el token de 10 caracteres alfanuméricos en
// mayúscula que identifica un pedido de cara al cliente. La unicidad la
// garantiza la restricción de la tabla; ante una colisión el llamador reintenta.
func GenerarNumeroPedido() (string, error) {
	buf := make([]byte, 10)
	max := big.NewInt(int64(len(numeroAlfabeto)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = numeroAlfabeto[n.Int64()]
	}
	return string(buf), nil
}
