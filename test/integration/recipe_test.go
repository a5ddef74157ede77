package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/jedzonko/recipes-api/internal/adapters/clock"
	handler "github.com/jedzonko/recipes-api/internal/adapters/handler/http"
	"github.com/jedzonko/recipes-api/internal/adapters/hasher"
	"github.com/jedzonko/recipes-api/internal/adapters/notifier"
	repo "github.com/jedzonko/recipes-api/internal/adapters/repository/postgres"
	"github.com/jedzonko/recipes-api/internal/adapters/token"
	"github.com/jedzonko/recipes-api/internal/config"
	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/services"
	"github.com/jedzonko/recipes-api/internal/logger"
)

const testJWTSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := t.Context()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	log := logger.New(0)
	clk := clock.New()
	bcrypt := hasher.NewBcrypt()
	mailer := notifier.NewEmailNotifier(config.SMTP{}, log)
	tokenGen := token.NewGenerator()

	userRepo := repo.NewUserRepository(db)
	productRepo := repo.NewProductRepository(db)
	recipeRepo := repo.NewRecipeRepository(db)
	ingredientRepo := repo.NewRecipeIngredientRepository(db)
	commentRepo := repo.NewCommentRepository(db)
	ratingRepo := repo.NewRatingRepository(db)
	tokenRepo := repo.NewRecoveryTokenRepository(db)

	userSvc := services.NewUserService(userRepo, tokenRepo, bcrypt, mailer, tokenGen, clk, services.UserServiceConfig{})
	authSvc := services.NewAuthService(userRepo, bcrypt, clk, testJWTSecret)
	productSvc := services.NewProductService(productRepo, userRepo)
	ingredientSvc := services.NewIngredientService(productRepo, ingredientRepo)
	ratingSvc := services.NewRatingService(ratingRepo, recipeRepo, userRepo)
	commentSvc := services.NewCommentService(commentRepo, recipeRepo, userRepo, clk)
	recipeSvc := services.NewRecipeService(recipeRepo, commentRepo, userRepo, ingredientSvc, ratingSvc, clk)
	searchSvc := services.NewSearchService(recipeRepo, ratingSvc)

	router := handler.NewHandler(handler.Handlers{
		Auth:    handler.NewAuthHandler(authSvc, userSvc),
		User:    handler.NewUserHandler(userSvc),
		Product: handler.NewProductHandler(productSvc),
		Recipe:  handler.NewRecipeHandler(recipeSvc, searchSvc),
		Comment: handler.NewCommentHandler(commentSvc),
		Rating:  handler.NewRatingHandler(ratingSvc),
	}, []byte(testJWTSecret))

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(t.Context()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{"username": username, "password": "password123"})
	resp, err := app.Client.Post(app.Server.URL+"/api/auth/register", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Client.Post(app.Server.URL+"/api/auth/login", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (app *TestApp) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// TestRecipeFlow walks the whole lifecycle: register, login, create a
// product, build a recipe from it, search it, rate it, comment on it and
// finally delete it with its dependents.
func TestRecipeFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	token := app.registerAndLogin(t, "alice@example.com")

	// Create a product to cook with.
	resp := app.do(t, http.MethodPost, "/api/products", token, map[string]any{
		"name":    "Flour",
		"barcode": "5901234123457",
		"image":   []byte{0x1},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decodeBody[domain.Product](t, resp)

	// Create a recipe using it.
	resp = app.do(t, http.MethodPost, "/api/recipes", token, map[string]any{
		"title":       "Bread",
		"description": "Plain white bread",
		"ingredients": []uuid.UUID{product.ID},
		"quantities":  []string{"500g"},
		"tags":        []string{"baking"},
		"image":       []byte{0x1},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	recipe := decodeBody[domain.Recipe](t, resp)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "alice@example.com", recipe.AuthorUsername)

	// Search finds it by title substring.
	resp = app.do(t, http.MethodGet, "/api/recipes?query=brea&sortBy=title", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := decodeBody[[]domain.Recipe](t, resp)
	require.Len(t, found, 1)
	assert.Equal(t, recipe.ID, found[0].ID)

	// Rate it and read the average back.
	resp = app.do(t, http.MethodPost, "/api/ratings", token, map[string]any{
		"recipeId": recipe.ID,
		"value":    4.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%s/rating", recipe.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	average := decodeBody[map[string]any](t, resp)
	assert.Equal(t, 4.0, average["ratingAverage"])

	// Comment on it.
	resp = app.do(t, http.MethodPost, "/api/comments", token, map[string]any{
		"recipeId": recipe.ID,
		"content":  "Solid base recipe",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%s/comments", recipe.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	comments := decodeBody[[]domain.Comment](t, resp)
	require.Len(t, comments, 1)

	// Delete the recipe; dependents go with it, the product stays.
	resp = app.do(t, http.MethodDelete, fmt.Sprintf("/api/recipes/%s", recipe.ID), token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	for _, table := range []string{"recipes", "recipe_ingredients", "recipe_tags", "comments", "ratings"} {
		var count int
		err := app.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count, "expected no rows left in %s", table)
	}

	var productCount int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&productCount))
	assert.Equal(t, 1, productCount)
}

func TestRecipeOwnershipEnforced(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	aliceToken := app.registerAndLogin(t, "alice@example.com")
	bobToken := app.registerAndLogin(t, "bob@example.com")

	resp := app.do(t, http.MethodPost, "/api/recipes", aliceToken, map[string]any{
		"title":       "Secret Sauce",
		"description": "Family recipe",
		"ingredients": []uuid.UUID{},
		"quantities":  []string{},
		"tags":        []string{"sauce"},
		"image":       []byte{0x1},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	recipe := decodeBody[domain.Recipe](t, resp)

	// Bob cannot edit or delete Alice's recipe.
	resp = app.do(t, http.MethodPut, fmt.Sprintf("/api/recipes/%s", recipe.ID), bobToken, map[string]any{
		"title": "Hijacked",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, http.MethodDelete, fmt.Sprintf("/api/recipes/%s", recipe.ID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// But Bob may rate it.
	resp = app.do(t, http.MethodPost, "/api/ratings", bobToken, map[string]any{
		"recipeId": recipe.ID,
		"value":    5.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// And without a token nothing is reachable.
	resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%s", recipe.ID), "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
