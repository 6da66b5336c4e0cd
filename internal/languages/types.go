package languages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Language is a known language code that may be enabled for localization.
type Language struct {
	bun.BaseModel `bun:"table:languages,alias:lang"`

	ID         uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	Code       string    `bun:"code,notnull,unique"    json:"code"`
	Name       string    `bun:"name,notnull"           json:"name"`
	NativeName string    `bun:"native_name"            json:"native_name,omitempty"`
	Direction  string    `bun:"direction,notnull,default:'ltr'" json:"direction"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Option is a select option rendered for language pickers.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
