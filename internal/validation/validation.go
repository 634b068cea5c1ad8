package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Errors mapea nombre de campo -> mensaje para el usuario. El formulario se
// puede enviar solo si el mapa queda vacío.
type Errors map[string]string

func (e Errors) Empty() bool { return len(e) == 0 }

var (
	// Letras (incluye tildes, ü y ñ) y espacios. Nada de dígitos ni signos.
	nombreRe = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚüÜñÑ\s]+$`)

	emailLocalRe  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+$`)
	emailDomainRe = regexp.MustCompile(`^[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	passwordLetraRe    = regexp.MustCompile(`[A-Za-z]`)
	passwordDigitoRe   = regexp.MustCompile(`[0-9]`)
	passwordEspecialRe = regexp.MustCompile(`[!@#$%^&*()_+={}\[\]:;'"<>,.?/\\|-]`)

	telefonoRe = regexp.MustCompile(`^\d{7,}$`)
)

// Requerido agrega el mensaje si el valor está en blanco.
func Requerido(errs Errors, field, mensaje, value string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = mensaje
	}
}

// Nombre valida campos tipo nombre: obligatorio, longitud mínima según la
// entidad, máximo 30 y solo letras y espacios. El label incluye el artículo
// ("El nombre", "La descripción") para que el mensaje quede bien redactado.
func Nombre(errs Errors, field, label, value string, minLen int) {
	switch {
	case strings.TrimSpace(value) == "":
		errs[field] = fmt.Sprintf("%s es obligatorio.", label)
	case len([]rune(strings.TrimSpace(value))) < minLen:
		errs[field] = fmt.Sprintf("%s debe contener al menos %d letras.", label, minLen)
	case len([]rune(value)) > 30:
		errs[field] = fmt.Sprintf("%s no debe exceder los 30 caracteres.", label)
	case !nombreRe.MatchString(value):
		errs[field] = fmt.Sprintf("%s no debe incluir caracteres especiales ni números.", label)
	}
}

func Email(errs Errors, field, value string) {
	local, domain, conArroba := strings.Cut(value, "@")
	switch {
	case value == "":
		errs[field] = "El correo electrónico es obligatorio."
	case len(value) < 5:
		errs[field] = "El correo electrónico debe tener al menos 5 caracteres."
	case len(value) > 30:
		errs[field] = "El correo electrónico no debe exceder los 30 caracteres."
	case !conArroba:
		errs[field] = "El correo electrónico debe contener un símbolo @."
	case !emailLocalRe.MatchString(local):
		errs[field] = "La parte local del correo electrónico (antes del @) debe ser alfanumérica y puede incluir ._%+-"
	case !emailDomainRe.MatchString(domain):
		errs[field] = "El dominio del correo electrónico (después del @) debe tener un formato válido."
	}
}

// Password aplica solo al crear usuarios; en edición la contraseña no se pide.
func Password(errs Errors, field, value string) {
	switch {
	case value == "":
		errs[field] = "La contraseña es obligatoria."
	case len(value) < 8:
		errs[field] = "La contraseña debe tener al menos 8 caracteres."
	case len(value) > 15:
		errs[field] = "La contraseña no debe exceder los 15 caracteres."
	case !passwordLetraRe.MatchString(value):
		errs[field] = "La contraseña debe contener al menos una letra (a-z, A-Z)."
	case !passwordDigitoRe.MatchString(value):
		errs[field] = "La contraseña debe contener al menos un número (0-9)."
	case !passwordEspecialRe.MatchString(value):
		errs[field] = `La contraseña debe contener al menos un carácter especial: !@#$%^&*()_+={}[]:;'"<>,.?/\|-`
	}
}

func Telefono(errs Errors, field, label, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		errs[field] = fmt.Sprintf("%s es requerido.", label)
	case !telefonoRe.MatchString(value):
		errs[field] = fmt.Sprintf("%s debe contener al menos 7 dígitos numéricos.", label)
	}
}

// NumeroPositivo exige un número estrictamente mayor que cero (cantidad,
// precio). El mensaje es el mismo tanto para vacío como para no numérico.
func NumeroPositivo(errs Errors, field, label, value string) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if strings.TrimSpace(value) == "" || err != nil || d.LessThanOrEqual(decimal.Zero) {
		errs[field] = fmt.Sprintf("%s debe ser un número positivo", label)
	}
}
