package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmartins/fornecedores-api/internal/application/auth"
	"github.com/wmartins/fornecedores-api/internal/application/dto"
	"github.com/wmartins/fornecedores-api/internal/application/usecase"
	"github.com/wmartins/fornecedores-api/internal/domain"
	"github.com/wmartins/fornecedores-api/internal/domain/entity"
	"github.com/wmartins/fornecedores-api/internal/domain/repository"
	apphttp "github.com/wmartins/fornecedores-api/internal/interfaces/http"
)

// ── Fakes em memória (mesmos portos dos adaptadores PostgreSQL) ───────────────

type memUsuarioRepo struct {
	byID   map[string]*entity.Usuario
	claims map[string][]entity.UsuarioClaim
	roles  map[string][]string
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{
		byID:   map[string]*entity.Usuario{},
		claims: map[string][]entity.UsuarioClaim{},
		roles:  map[string][]string{},
	}
}

func (r *memUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUsuarioRepo) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsuarioRepo) UpdateLockout(_ context.Context, id string, failedCount int, lockoutEnd *time.Time) error {
	if u, ok := r.byID[id]; ok {
		u.AccessFailedCount = failedCount
		u.LockoutEnd = lockoutEnd
	}
	return nil
}

func (r *memUsuarioRepo) GetClaims(_ context.Context, usuarioID string) ([]entity.UsuarioClaim, error) {
	return r.claims[usuarioID], nil
}

func (r *memUsuarioRepo) GetRoles(_ context.Context, usuarioID string) ([]string, error) {
	return r.roles[usuarioID], nil
}

type memRefresh struct {
	usuarioID string
	expiresAt time.Time
}

type memTokenRepo struct {
	byHash map[string]memRefresh
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{byHash: map[string]memRefresh{}}
}

func (r *memTokenRepo) Store(_ context.Context, usuarioID, tokenHash string, expiresAt time.Time) error {
	r.byHash[tokenHash] = memRefresh{usuarioID: usuarioID, expiresAt: expiresAt}
	return nil
}

func (r *memTokenRepo) Consume(_ context.Context, tokenHash string, now time.Time) (string, error) {
	s, ok := r.byHash[tokenHash]
	if !ok || !s.expiresAt.After(now) {
		return "", nil
	}
	delete(r.byHash, tokenHash)
	return s.usuarioID, nil
}

type memFornecedorRepo struct {
	byID  map[string]*entity.Fornecedor
	order []string
}

func newMemFornecedorRepo() *memFornecedorRepo {
	return &memFornecedorRepo{byID: map[string]*entity.Fornecedor{}}
}

func (r *memFornecedorRepo) List(_ context.Context) ([]*entity.Fornecedor, error) {
	out := make([]*entity.Fornecedor, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memFornecedorRepo) GetByID(_ context.Context, id string) (*entity.Fornecedor, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *memFornecedorRepo) Create(_ context.Context, f *entity.Fornecedor) (int64, error) {
	cp := *f
	r.byID[f.ID] = &cp
	r.order = append(r.order, f.ID)
	return 1, nil
}

func (r *memFornecedorRepo) Update(_ context.Context, f *entity.Fornecedor) (int64, error) {
	if _, ok := r.byID[f.ID]; !ok {
		return 0, nil
	}
	cp := *f
	r.byID[f.ID] = &cp
	return 1, nil
}

func (r *memFornecedorRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

type memTxRunner struct {
	repo repository.FornecedorRepository
}

func (r *memTxRunner) Run(_ context.Context, fn func(repo repository.FornecedorRepository) error) error {
	return fn(r.repo)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type testAPI struct {
	app      *fiber.App
	usuarios *memUsuarioRepo
}

// buildAPI monta a aplicação completa sobre fakes, com a tabela de rotas real.
func buildAPI(authEnabled bool) *testAPI {
	usuarios := newMemUsuarioRepo()
	fornecedores := newMemFornecedorRepo()
	authUC := auth.NewAuthUseCase(usuarios, newMemTokenRepo(),
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, RefreshHours: 24, Issuer: testIssuer},
		auth.LockoutPolicy{MaxFailedAttempts: 3, LockoutMinutes: 5},
	)
	fornecedorUC := usecase.NewFornecedorUseCase(fornecedores, &memTxRunner{repo: fornecedores})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		FornecedorUC: fornecedorUC,
		JWTSecret:    testJWTSecret,
		AuthEnabled:  authEnabled,
	})
	return &testAPI{app: app, usuarios: usuarios}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, bearer string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// register registra um usuário e devolve o token de acesso.
func (a *testAPI) register(t *testing.T, email string) dto.TokenResponse {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/registro", fiber.Map{
		"email":            email,
		"password":         "senha-123",
		"confirm_password": "senha-123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.TokenResponse](t, resp)
}

// login autentica e devolve a resposta de token.
func (a *testAPI) login(t *testing.T, email, password string) *http.Response {
	t.Helper()
	return a.do(t, http.MethodPost, "/login", fiber.Map{"email": email, "password": password}, "")
}

// grantDeleteClaim concede o claim DeleteFornecedor e devolve um token novo.
func (a *testAPI) grantDeleteClaim(t *testing.T, tok dto.TokenResponse) string {
	t.Helper()
	a.usuarios.claims[tok.Usuario.ID] = []entity.UsuarioClaim{{Tipo: apphttp.ClaimDeleteFornecedor, Valor: "true"}}
	resp := a.login(t, tok.Usuario.Email, "senha-123")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.TokenResponse](t, resp).AccessToken
}

func fornecedorBody() fiber.Map {
	return fiber.Map{
		"nome":      "Fornecedor Exemplo",
		"documento": "12345678000199",
		"ativo":     true,
		"enderecos": []string{"Rua A, 100"},
	}
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestRegistro_PayloadInvalido_NomeiaCampos(t *testing.T) {
	api := buildAPI(true)

	resp := api.do(t, http.MethodPost, "/registro", fiber.Map{"password": "senha-123"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	problem := decode[dto.ValidationProblem](t, resp)
	assert.Contains(t, problem.Errors, "email", "o campo faltante deve ser nomeado")
	assert.Contains(t, problem.Errors, "confirm_password")
}

func TestRegistro_SenhasDiferentes_Retorna400(t *testing.T) {
	api := buildAPI(true)

	resp := api.do(t, http.MethodPost, "/registro", fiber.Map{
		"email":            "a@b.com",
		"password":         "senha-123",
		"confirm_password": "outra-coisa",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	problem := decode[dto.ValidationProblem](t, resp)
	assert.Contains(t, problem.Errors, "confirm_password")
}

func TestRegistro_Sucesso_DevolveParDeTokens(t *testing.T) {
	api := buildAPI(true)

	tok := api.register(t, "novo@exemplo.com")
	assert.NotEmpty(t, tok.AccessToken)
	assert.NotEmpty(t, tok.RefreshToken)
	assert.Equal(t, "novo@exemplo.com", tok.Usuario.Email)
}

func TestRegistro_EmailDuplicado_Retorna400(t *testing.T) {
	api := buildAPI(true)
	api.register(t, "dup@exemplo.com")

	resp := api.do(t, http.MethodPost, "/registro", fiber.Map{
		"email":            "dup@exemplo.com",
		"password":         "senha-123",
		"confirm_password": "senha-123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Erro do provedor na mesma forma de lista por campo da validação.
	body := decode[dto.ValidationProblem](t, resp)
	assert.Equal(t, "EMAIL_EXISTS", body.Code)
	assert.Contains(t, body.Errors, "email")
	assert.NotEmpty(t, body.Errors["email"])
}

func TestLogin_CredenciaisErradas_MensagemGenerica(t *testing.T) {
	api := buildAPI(true)
	api.register(t, "login@exemplo.com")

	wrongPassword := api.login(t, "login@exemplo.com", "senha-errada")
	unknownUser := api.login(t, "ninguem@exemplo.com", "qualquer")

	assert.Equal(t, http.StatusBadRequest, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusBadRequest, unknownUser.StatusCode)

	// Mesma resposta nos dois casos: sem enumeração de usuários.
	b1 := decode[dto.ErrorResponse](t, wrongPassword)
	b2 := decode[dto.ErrorResponse](t, unknownUser)
	assert.Equal(t, b1, b2)
}

func TestLogin_FalhasConsecutivas_Bloqueiam(t *testing.T) {
	api := buildAPI(true)
	api.register(t, "lock@exemplo.com")

	for i := 0; i < 3; i++ {
		resp := api.login(t, "lock@exemplo.com", "senha-errada")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}

	// Senha correta com a conta bloqueada ainda falha.
	resp := api.login(t, "lock@exemplo.com", "senha-123")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "LOCKED", body.Code)
}

func TestRefresh_RotacionaTokens(t *testing.T) {
	api := buildAPI(true)
	first := api.register(t, "refresh@exemplo.com")

	resp := api.do(t, http.MethodPost, "/refresh", fiber.Map{"refresh_token": first.RefreshToken}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode[dto.TokenResponse](t, resp)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Uso único.
	resp = api.do(t, http.MethodPost, "/refresh", fiber.Map{"refresh_token": first.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// ── Fornecedor CRUD (variante canônica, com auth) ─────────────────────────────

func TestFornecedor_List_EhAnonimo(t *testing.T) {
	api := buildAPI(true)

	resp := api.do(t, http.MethodGet, "/fornecedor", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.FornecedorResponse](t, resp)
	assert.Empty(t, list)
}

func TestFornecedor_GetByID_SemToken_Retorna401(t *testing.T) {
	api := buildAPI(true)

	resp := api.do(t, http.MethodGet, "/fornecedor/qualquer-id", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestFornecedor_GetByID_Inexistente_Retorna404(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")

	resp := api.do(t, http.MethodGet, "/fornecedor/66666666-6666-4666-8666-666666666666", nil, tok.AccessToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestFornecedor_IDMalformado_Retorna404(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")
	elevated := api.grantDeleteClaim(t, tok)

	// Um id que não é UUID nunca corresponde a uma linha; a resposta é o mesmo
	// 404 de identificador desconhecido, sem estourar o cast no banco.
	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, fornecedorBody()},
		{http.MethodDelete, nil},
	} {
		resp := api.do(t, tc.method, "/fornecedor/abc", tc.body, elevated)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.method)
		resp.Body.Close()
	}
}

func TestFornecedor_Create_SemToken_Retorna401(t *testing.T) {
	api := buildAPI(true)

	resp := api.do(t, http.MethodPost, "/fornecedor", fornecedorBody(), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestFornecedor_Create_DocumentoInvalido_NomeiaCampo(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")

	body := fornecedorBody()
	body["documento"] = "123" // 14 dígitos exatos requeridos
	resp := api.do(t, http.MethodPost, "/fornecedor", body, tok.AccessToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	problem := decode[dto.ValidationProblem](t, resp)
	assert.Contains(t, problem.Errors, "documento")
}

func TestFornecedor_Create_NomeCurto_Retorna400(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")

	body := fornecedorBody()
	body["nome"] = "ab"
	resp := api.do(t, http.MethodPost, "/fornecedor", body, tok.AccessToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	problem := decode[dto.ValidationProblem](t, resp)
	assert.Contains(t, problem.Errors, "nome")
}

func TestFornecedor_Create_Valido_201ComLocationEGetDevolveIgual(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")

	resp := api.do(t, http.MethodPost, "/fornecedor", fornecedorBody(), tok.AccessToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[dto.FornecedorResponse](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "/fornecedor/"+created.ID, resp.Header.Get("Location"))

	getResp := api.do(t, http.MethodGet, "/fornecedor/"+created.ID, nil, tok.AccessToken)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	fetched := decode[dto.FornecedorResponse](t, getResp)
	assert.Equal(t, created, fetched)
}

func TestFornecedor_Update_SubstituiSemMerge(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")

	resp := api.do(t, http.MethodPost, "/fornecedor", fornecedorBody(), tok.AccessToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.FornecedorResponse](t, resp)

	putResp := api.do(t, http.MethodPut, "/fornecedor/"+created.ID, fiber.Map{
		"nome":      "Nome Substituído",
		"documento": "99999999000111",
		"ativo":     false,
	}, tok.AccessToken)
	assert.Equal(t, http.StatusNoContent, putResp.StatusCode)
	putResp.Body.Close()

	getResp := api.do(t, http.MethodGet, "/fornecedor/"+created.ID, nil, tok.AccessToken)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	fetched := decode[dto.FornecedorResponse](t, getResp)
	assert.Equal(t, "Nome Substituído", fetched.Nome)
	assert.Equal(t, "99999999000111", fetched.Documento)
	assert.False(t, fetched.Ativo)
	assert.Empty(t, fetched.Enderecos, "o payload manda por inteiro, sem merge com a linha antiga")
}

func TestFornecedor_Update_Inexistente_Retorna404(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")

	resp := api.do(t, http.MethodPut, "/fornecedor/77777777-7777-4777-8777-777777777777", fornecedorBody(), tok.AccessToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestFornecedor_Delete_SemClaim_Retorna403(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")

	resp := api.do(t, http.MethodPost, "/fornecedor", fornecedorBody(), tok.AccessToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.FornecedorResponse](t, resp)

	delResp := api.do(t, http.MethodDelete, "/fornecedor/"+created.ID, nil, tok.AccessToken)
	assert.Equal(t, http.StatusForbidden, delResp.StatusCode)
	delResp.Body.Close()
}

func TestFornecedor_Delete_ComClaim_204EGetDevolve404(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")

	resp := api.do(t, http.MethodPost, "/fornecedor", fornecedorBody(), tok.AccessToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.FornecedorResponse](t, resp)

	elevated := api.grantDeleteClaim(t, tok)
	delResp := api.do(t, http.MethodDelete, "/fornecedor/"+created.ID, nil, elevated)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	getResp := api.do(t, http.MethodGet, "/fornecedor/"+created.ID, nil, elevated)
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	getResp.Body.Close()
}

func TestFornecedor_VariasCriacoes_TodasRecuperaveis(t *testing.T) {
	api := buildAPI(true)
	tok := api.register(t, "crud@exemplo.com")

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		body := fornecedorBody()
		body["documento"] = fmt.Sprintf("%014d", i+1)
		resp := api.do(t, http.MethodPost, "/fornecedor", body, tok.AccessToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, decode[dto.FornecedorResponse](t, resp).ID)
	}

	for _, id := range ids {
		resp := api.do(t, http.MethodGet, "/fornecedor/"+id, nil, tok.AccessToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	listResp := api.do(t, http.MethodGet, "/fornecedor", nil, "")
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	list := decode[[]dto.FornecedorResponse](t, listResp)
	assert.Len(t, list, 5)
}

// ── Variante sem autorização (AUTH_ENABLED=false) ─────────────────────────────

func TestVarianteSemAuth_CRUDSemToken(t *testing.T) {
	api := buildAPI(false)

	resp := api.do(t, http.MethodPost, "/fornecedor", fornecedorBody(), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.FornecedorResponse](t, resp)

	getResp := api.do(t, http.MethodGet, "/fornecedor/"+created.ID, nil, "")
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
	getResp.Body.Close()

	// Até o delete dispensa o claim na variante sem auth.
	delResp := api.do(t, http.MethodDelete, "/fornecedor/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()
}
