package auth

import (
	"testing"
	"time"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueTokenDobleFactor(t *testing.T) {
	database.OpenTest(t)

	token, err := IssueToken(1, models.TokenDobleFactor)
	require.NoError(t, err)

	assert.Len(t, token.Codigo, 6)
	assert.Equal(t, models.TokenActivo, token.Estado)
	assert.True(t, token.Expiracion.After(time.Now()))
	assert.True(t, token.Expiracion.Before(time.Now().Add(11*time.Minute)))
}

func TestConsumeTokenEsDeUnSoloUso(t *testing.T) {
	database.OpenTest(t)

	token, err := IssueToken(1, models.TokenDobleFactor)
	require.NoError(t, err)

	consumido, err := ConsumeToken(token.Token, models.TokenDobleFactor, token.Codigo)
	require.NoError(t, err)
	assert.Equal(t, models.TokenUsado, consumido.Estado)

	_, err = ConsumeToken(token.Token, models.TokenDobleFactor, token.Codigo)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestConsumeTokenRechazaCodigoIncorrecto(t *testing.T) {
	database.OpenTest(t)

	token, err := IssueToken(1, models.TokenDobleFactor)
	require.NoError(t, err)

	_, err = ConsumeToken(token.Token, models.TokenDobleFactor, "000000x")
	assert.ErrorIs(t, err, ErrCodigoInvalido)

	// el código incorrecto no quema el token
	_, err = ConsumeToken(token.Token, models.TokenDobleFactor, token.Codigo)
	assert.NoError(t, err)
}

func TestConsumeTokenExpirado(t *testing.T) {
	db := database.OpenTest(t)

	token, err := IssueToken(1, models.TokenRecuperacion)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.TokenAutenticacion{}).
		Where("id = ?", token.ID).
		Update("expiracion", time.Now().Add(-time.Minute)).Error)

	_, err = ConsumeToken(token.Token, models.TokenRecuperacion, "")
	assert.ErrorIs(t, err, ErrTokenExpirado)

	var actual models.TokenAutenticacion
	require.NoError(t, db.First(&actual, token.ID).Error)
	assert.Equal(t, models.TokenExpirado, actual.Estado)
}

func TestConsumeTokenTipoDistinto(t *testing.T) {
	database.OpenTest(t)

	token, err := IssueToken(1, models.TokenRecuperacion)
	require.NoError(t, err)

	_, err = ConsumeToken(token.Token, models.TokenDobleFactor, "")
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestGenerateTokenClaims(t *testing.T) {
	secret := "clave-de-prueba-con-largo-suficiente-123"
	user := &models.Usuario{ID: 9, Username: "lmendoza"}

	firmado, err := GenerateToken(secret, user, models.RolMecanico)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(firmado, &JWTCustomClaims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	assert.EqualValues(t, 9, claims.UserID)
	assert.Equal(t, "lmendoza", claims.Username)
	assert.Equal(t, models.RolMecanico, claims.Rol)
}

func TestGenerateTokenFirmaInvalida(t *testing.T) {
	user := &models.Usuario{ID: 9, Username: "lmendoza"}

	firmado, err := GenerateToken("clave-correcta-con-largo-suficiente-abc", user, models.RolMecanico)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(firmado, &JWTCustomClaims{}, func(*jwt.Token) (any, error) {
		return []byte("otra-clave-distinta-con-largo-suficiente"), nil
	})
	assert.Error(t, err)
}
