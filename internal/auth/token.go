package auth

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrTokenInvalido  = errors.New("token inválido")
	ErrTokenExpirado  = errors.New("token expirado")
	ErrCodigoInvalido = errors.New("código de verificación incorrecto")
)

const (
	expiracionDobleFactor  = 10 * time.Minute
	expiracionRecuperacion = time.Hour
)

// IssueToken crea un token de autenticación de un solo uso para el usuario.
// Los tokens DOBLE_FACTOR llevan además un código de verificación de 6 dígitos.
func IssueToken(usuarioID uint, tipo models.TipoToken) (*models.TokenAutenticacion, error) {
	exp := expiracionRecuperacion
	codigo := ""
	if tipo == models.TokenDobleFactor {
		exp = expiracionDobleFactor
		c, err := randomCode()
		if err != nil {
			return nil, err
		}
		codigo = c
	}

	token := models.TokenAutenticacion{
		UsuarioID:  usuarioID,
		Token:      uuid.NewString(),
		Tipo:       tipo,
		Codigo:     codigo,
		Expiracion: time.Now().Add(exp),
		Estado:     models.TokenActivo,
	}

	if err := database.DB.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// ConsumeToken valida un token activo del tipo dado y lo marca como usado.
// Un token expirado se marca EXPIRADO y nunca valida.
func ConsumeToken(tokenStr string, tipo models.TipoToken, codigo string) (*models.TokenAutenticacion, error) {
	var token models.TokenAutenticacion
	err := database.DB.
		Where("token = ? AND tipo = ? AND estado = ?", tokenStr, tipo, models.TokenActivo).
		First(&token).Error
	if err != nil {
		return nil, ErrTokenInvalido
	}

	if time.Now().After(token.Expiracion) {
		database.DB.Model(&token).Update("estado", models.TokenExpirado)
		return nil, ErrTokenExpirado
	}

	if tipo == models.TokenDobleFactor && token.Codigo != codigo {
		return nil, ErrCodigoInvalido
	}

	if err := database.DB.Model(&token).Update("estado", models.TokenUsado).Error; err != nil {
		return nil, err
	}
	token.Estado = models.TokenUsado
	return &token, nil
}

func randomCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	digits := n.String()
	for len(digits) < 6 {
		digits = "0" + digits
	}
	return digits, nil
}
