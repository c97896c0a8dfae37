package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/user"
)

func TestNewUser_EstadoInicial(t *testing.T) {
	u, err := user.NewUser("Maria Silva", "maria@acme.com.br", "senha-segura", user.RoleEmissor)
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Maria Silva", u.Name)
	assert.Equal(t, "maria@acme.com.br", u.Email)
	assert.Equal(t, user.RoleEmissor, u.Role)
	assert.Equal(t, user.StatusActive, u.Status)
	assert.Nil(t, u.LastLoginAt)
	assert.NotEqual(t, "senha-segura", u.Password)
}

func TestNewUser_Validacoes(t *testing.T) {
	tests := []struct {
		nome     string
		name     string
		email    string
		password string
		role     user.Role
		wantErr  error
	}{
		{"nome vazio", "", "a@b.com", "senha-segura", user.RoleAdmin, user.ErrNomeObrigatorio},
		{"email inválido", "Maria", "não-é-email", "senha-segura", user.RoleAdmin, user.ErrEmailInvalido},
		{"senha curta", "Maria", "a@b.com", "1234567", user.RoleAdmin, user.ErrSenhaCurta},
		{"papel inválido", "Maria", "a@b.com", "senha-segura", user.Role("gerente"), user.ErrPapelInvalido},
	}

	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			_, err := user.NewUser(tt.name, tt.email, tt.password, tt.role)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUser_CheckPassword(t *testing.T) {
	u, err := user.NewUser("Maria Silva", "maria@acme.com.br", "senha-segura", user.RoleConsulta)
	require.NoError(t, err)

	assert.True(t, u.CheckPassword("senha-segura"))
	assert.False(t, u.CheckPassword("senha-errada"))
}

func TestUser_Permissoes(t *testing.T) {
	admin, err := user.NewUser("Admin", "admin@acme.com.br", "senha-segura", user.RoleAdmin)
	require.NoError(t, err)
	emissor, err := user.NewUser("Emissor", "emissor@acme.com.br", "senha-segura", user.RoleEmissor)
	require.NoError(t, err)
	consulta, err := user.NewUser("Consulta", "consulta@acme.com.br", "senha-segura", user.RoleConsulta)
	require.NoError(t, err)

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.PodeEmitir())
	assert.False(t, emissor.IsAdmin())
	assert.True(t, emissor.PodeEmitir())
	assert.False(t, consulta.PodeEmitir())
}

func TestUser_Status(t *testing.T) {
	u, err := user.NewUser("Maria Silva", "maria@acme.com.br", "senha-segura", user.RoleEmissor)
	require.NoError(t, err)

	assert.True(t, u.IsActive())

	u.Block()
	assert.False(t, u.IsActive())

	u.Activate()
	assert.True(t, u.IsActive())

	u.Deactivate()
	assert.False(t, u.IsActive())
}

func TestUser_RegistrarLogin(t *testing.T) {
	u, err := user.NewUser("Maria Silva", "maria@acme.com.br", "senha-segura", user.RoleEmissor)
	require.NoError(t, err)

	u.RegistrarLogin()
	require.NotNil(t, u.LastLoginAt)
	assert.False(t, u.LastLoginAt.IsZero())
}
