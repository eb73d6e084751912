package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim par tipo/valor atribuído a um usuário (ex.: "DeleteFornecedor"="true").
type Claim struct {
	Tipo  string `json:"tipo"`
	Valor string `json:"valor"`
}

// Claims inclui os claims padrão JWT mais os campos próprios da aplicação.
// UserClaims e Roles viajam no token para que o gate de autorização decida
// sem consultar a base.
type Claims struct {
	jwt.RegisteredClaims
	Email      string   `json:"email"`
	UserClaims []Claim  `json:"claims,omitempty"`
	Roles      []string `json:"roles,omitempty"`
}

// Identity resultado do parse de um token válido.
type Identity struct {
	UserID string
	Email  string
	Claims []Claim
	Roles  []string
}

// HasClaim informa se a identidade carrega um claim do tipo dado.
func (i Identity) HasClaim(tipo string) bool {
	for _, c := range i.Claims {
		if c.Tipo == tipo {
			return true
		}
	}
	return false
}

// Generate gera um access token JWT assinado (HS256) com email, claims e roles.
// Devolve também o instante de expiração para compor a resposta de token.
func Generate(secret, userID, email string, claims []Claim, roles []string, issuer string, expMinutes int) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email:      email,
		UserClaims: claims,
		Roles:      roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse valida o token e devolve a identidade embutida.
// Retorna erro se o token for inválido, expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Claims: claims.UserClaims,
		Roles:  claims.Roles,
	}, nil
}
