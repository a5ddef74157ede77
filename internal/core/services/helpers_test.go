package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jedzonko/recipes-api/internal/adapters/repository/memory"
	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
	"github.com/jedzonko/recipes-api/internal/logger"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeHasher struct{}

func (fakeHasher) Encode(raw string) (string, error) {
	return "hash:" + raw, nil
}

func (fakeHasher) Matches(raw, encoded string) bool {
	return encoded == "hash:"+raw
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeNotifier struct {
	mu    sync.Mutex
	Mails []sentMail
	Fail  bool
}

func (n *fakeNotifier) Send(to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail {
		return errors.New("smtp unavailable")
	}
	n.Mails = append(n.Mails, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (n *fakeNotifier) Last() sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Mails) == 0 {
		return sentMail{}
	}
	return n.Mails[len(n.Mails)-1]
}

type fakeTokenGen struct {
	mu   sync.Mutex
	next int
}

func (g *fakeTokenGen) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("token-%d", g.next)
}

type testEnv struct {
	Clock    *fakeClock
	Notifier *fakeNotifier
	TokenGen *fakeTokenGen

	UserRepo       *memory.UserRepository
	ProductRepo    *memory.ProductRepository
	RecipeRepo     *memory.RecipeRepository
	IngredientRepo *memory.RecipeIngredientRepository
	CommentRepo    *memory.CommentRepository
	RatingRepo     *memory.RatingRepository
	TokenRepo      *memory.RecoveryTokenRepository

	Users       ports.UserService
	Products    ports.ProductService
	Ingredients ports.IngredientService
	Ratings     ports.RatingService
	Comments    ports.CommentService
	Recipes     ports.RecipeService
	Search      ports.SearchService
	Sweeper     *TokenSweeper
}

func newTestEnv(t *testing.T, cfg UserServiceConfig) *testEnv {
	t.Helper()

	env := &testEnv{
		Clock:          &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		Notifier:       &fakeNotifier{},
		TokenGen:       &fakeTokenGen{},
		UserRepo:       memory.NewUserRepository(),
		ProductRepo:    memory.NewProductRepository(),
		IngredientRepo: memory.NewRecipeIngredientRepository(),
		CommentRepo:    memory.NewCommentRepository(),
		RatingRepo:     memory.NewRatingRepository(),
		TokenRepo:      memory.NewRecoveryTokenRepository(),
	}
	env.RecipeRepo = memory.NewRecipeRepository(env.IngredientRepo)

	env.Users = NewUserService(env.UserRepo, env.TokenRepo, fakeHasher{}, env.Notifier, env.TokenGen, env.Clock, cfg)
	env.Products = NewProductService(env.ProductRepo, env.UserRepo)
	env.Ingredients = NewIngredientService(env.ProductRepo, env.IngredientRepo)
	env.Ratings = NewRatingService(env.RatingRepo, env.RecipeRepo, env.UserRepo)
	env.Comments = NewCommentService(env.CommentRepo, env.RecipeRepo, env.UserRepo, env.Clock)
	env.Recipes = NewRecipeService(env.RecipeRepo, env.CommentRepo, env.UserRepo, env.Ingredients, env.Ratings, env.Clock)
	env.Search = NewSearchService(env.RecipeRepo, env.Ratings)
	env.Sweeper = NewTokenSweeper(env.TokenRepo, env.UserRepo, env.Clock, 0, logger.New(0))

	return env
}

func (env *testEnv) mustRegister(t *testing.T, username string) *domain.User {
	t.Helper()

	user, err := env.Users.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (env *testEnv) mustProduct(t *testing.T, username, name string) *domain.Product {
	t.Helper()

	product, err := env.Products.Create(context.Background(), username, ports.CreateProductInput{
		Name:    name,
		Barcode: "5901234123457",
		Image:   []byte{0x1},
	})
	require.NoError(t, err)
	return product
}

func (env *testEnv) mustRecipe(t *testing.T, username, title string, tags []string, productIDs ...uuid.UUID) *domain.Recipe {
	t.Helper()

	if productIDs == nil {
		productIDs = []uuid.UUID{}
	}
	quantities := make([]string, len(productIDs))
	for i := range quantities {
		quantities[i] = "100g"
	}
	recipe, err := env.Recipes.Create(context.Background(), username, ports.CreateRecipeInput{
		Title:       title,
		Description: "a description",
		Ingredients: productIDs,
		Quantities:  quantities,
		Tags:        tags,
		Image:       []byte{0x1},
	})
	require.NoError(t, err)
	return recipe
}
