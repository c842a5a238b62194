// README: Affiliation (carrier group) master entity.
package affiliation

import "time"

type Affiliation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Memo      string    `json:"memo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
