package user

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/GuiEstevamCorrea/AxFisco/internal/domain/entity"
)

var (
	ErrNomeObrigatorio = errors.New("nome do usuário é obrigatório")
	ErrEmailInvalido   = errors.New("email inválido")
	ErrSenhaCurta      = errors.New("senha deve ter pelo menos 8 caracteres")
	ErrPapelInvalido   = errors.New("papel de usuário inválido")
)

// Role representa o papel do usuário no sistema de emissão
type Role string

const (
	RoleAdmin    Role = "admin"    // Administrador do sistema
	RoleEmissor  Role = "emissor"  // Pode emitir e cancelar notas
	RoleConsulta Role = "consulta" // Apenas consulta notas e cadastros
)

// Status representa o status do usuário
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User representa um usuário do sistema
type User struct {
	entity.Base
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"-"` // O hash da senha nunca é serializado
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// NewUser cria um novo usuário ativo com a senha já em hash
func NewUser(name, email, password string, role Role) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNomeObrigatorio
	}
	if !emailRegexp.MatchString(email) {
		return nil, ErrEmailInvalido
	}
	if !roleValida(role) {
		return nil, ErrPapelInvalido
	}

	u := &User{
		Base:   entity.NewBase("user"),
		Name:   name,
		Email:  strings.ToLower(email),
		Role:   role,
		Status: StatusActive,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword configura a senha do usuário com hash bcrypt
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return ErrSenhaCurta
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// RegistrarLogin marca o instante do último login
func (u *User) RegistrarLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.Touch()
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PodeEmitir verifica se o usuário pode emitir e cancelar notas
func (u *User) PodeEmitir() bool {
	return u.Role == RoleAdmin || u.Role == RoleEmissor
}

// Activate ativa o usuário
func (u *User) Activate() {
	u.Status = StatusActive
	u.Touch()
}

// Deactivate desativa o usuário
func (u *User) Deactivate() {
	u.Status = StatusInactive
	u.Touch()
}

// Block bloqueia o usuário
func (u *User) Block() {
	u.Status = StatusBlocked
	u.Touch()
}

func roleValida(r Role) bool {
	switch r {
	case RoleAdmin, RoleEmissor, RoleConsulta:
		return true
	}
	return false
}
