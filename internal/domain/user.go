package domain

import "time"

// TokenAccessAuth es el unico scope que emite el servicio.
const TokenAccessAuth = "auth"

// Token es una entrada del conjunto de tokens activos de un usuario.
type Token struct {
	Access string `json:"access"`
	Token  string `json:"token"`
}

type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Tokens       []Token   `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// PublicUser es la unica representacion de User que sale por la API.
type PublicUser struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}
