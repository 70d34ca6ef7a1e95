package domain

import "time"

type Todo struct {
	ID          string    `json:"_id"`
	Text        string    `json:"text"`
	Completed   bool      `json:"completed"`
	CompletedAt *int64    `json:"completedAt"`
	OwnerID     string    `json:"_creator"`
	CreatedAt   time.Time `json:"-"`
}

// TodoPatch contiene los unicos campos que un PATCH puede modificar.
// Text nil deja el texto actual intacto.
type TodoPatch struct {
	Text      *string
	Completed bool
}

// ApplyCompletion fija Completed y CompletedAt segun el patch.
// completedAt queda no nulo si y solo si completed es true.
func (p TodoPatch) ApplyCompletion(now time.Time) (bool, *int64) {
	if !p.Completed {
		return false, nil
	}
	ms := now.UnixMilli()
	return true, &ms
}
