package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"farm-market-session/dto"
	"farm-market-session/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthResponse_WireNames(t *testing.T) {
	raw := `{"token":"t.o.k","user":{"id":12,"email":"a@x.com","firstName":"A","lastName":"B","role":"farmer"}}`

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	assert.Equal(t, "t.o.k", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, model.User{ID: 12, Email: "a@x.com", FirstName: "A", LastName: "B", Role: model.RoleFarmer}, *resp.User)
}

func TestClaims_PayloadMapping(t *testing.T) {
	iat, exp := int64(1_700_000_000), int64(1_700_003_600)
	p := model.JwtPayload{ID: 4, Email: "d@x.com", Role: model.RoleAdmin, IssuedAt: &iat, ExpiresAt: &exp}

	claims := dto.ClaimsFromPayload(p)
	assert.Equal(t, int64(4), claims.UserID)
	assert.Equal(t, exp, claims.ExpiresAt.Unix())
	assert.Empty(t, claims.ID, "jti stays unset")

	assert.Equal(t, p, claims.ToPayload())

	bare := dto.ClaimsFromPayload(model.JwtPayload{ID: 1, Email: "a@x.com", Role: "buyer"})
	assert.Nil(t, bare.IssuedAt)
	assert.Nil(t, bare.ExpiresAt)
	assert.Nil(t, bare.ToPayload().ExpiresAt)
}

func TestSessionView_OmitsToken(t *testing.T) {
	exp := int64(1_700_003_600)
	state := model.SessionState{
		ID:            uuid.New(),
		User:          model.User{ID: 1, Email: "a@x.com", Role: model.RoleBuyer},
		RawToken:      "secret.raw.token",
		Payload:       model.JwtPayload{ID: 1, Email: "a@x.com", Role: model.RoleBuyer, ExpiresAt: &exp},
		EstablishedAt: time.Now(),
	}

	raw, err := json.Marshal(dto.NewSessionView(state))
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret.raw.token")
	assert.Contains(t, string(raw), `"exp":1700003600`)
	assert.Contains(t, string(raw), state.ID.String())
	assert.NotContains(t, string(raw), `"iat"`)
}
