package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base contém os campos de identidade e auditoria comuns a todas as
// entidades do domínio. As entidades embutem Base por composição.
type Base struct {
	ID        string    `json:"id"`
	Kind      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBase cria uma nova identidade para o tipo concreto informado
func NewBase(kind string) Base {
	now := time.Now()
	return Base{
		ID:        uuid.New().String(),
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch atualiza o carimbo de modificação da entidade
func (b *Base) Touch() {
	b.UpdatedAt = time.Now()
}

// Equals compara duas entidades pelo id e pelo tipo concreto
func (b Base) Equals(other Base) bool {
	if b.Kind != other.Kind {
		return false
	}
	return b.ID == other.ID
}
