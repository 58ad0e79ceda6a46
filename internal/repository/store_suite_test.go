package repository

import (
	"context"
	"sort"
	"testing"
	"time"

	"b1-flyer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite exercises a Store against the behaviour both backends share.
func runStoreSuite(t *testing.T, store *Store) {
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com")
	bob := seedUser(t, store, "bob@example.com")

	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, store.Pinger.Ping(ctx))
	})

	t.Run("Users", func(t *testing.T) {
		got, err := store.Users.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, alice.ID, got.ID)
		assert.Equal(t, "hash", got.PasswordHash)

		missing, err := store.Users.GetByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, missing)

		dup := newUser("alice@example.com")
		assert.ErrorIs(t, store.Users.Create(ctx, dup), model.ErrEmailTaken)

		login := time.Now().UTC().Truncate(time.Millisecond)
		alice.FirstName = "Alicia"
		alice.LastLoginAt = &login
		require.NoError(t, store.Users.Update(ctx, alice))

		got, err = store.Users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got.FirstName)
		require.NotNil(t, got.LastLoginAt)
		assert.WithinDuration(t, login, *got.LastLoginAt, time.Millisecond)
	})

	t.Run("ProductOwnership", func(t *testing.T) {
		p := seedProduct(t, store, alice.ID, "Scoped", "")

		got, err := store.Products.GetByID(ctx, bob.ID, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got, "foreign product must read as absent")

		foreign := *p
		foreign.UserID = bob.ID
		foreign.Name = "Hijacked"
		assert.ErrorIs(t, store.Products.Update(ctx, &foreign), model.ErrProductNotFound)
		assert.ErrorIs(t, store.Products.Delete(ctx, bob.ID, p.ID), model.ErrProductNotFound)

		got, err = store.Products.GetByID(ctx, alice.ID, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Scoped", got.Name)
	})

	t.Run("GetByIDsDropsUnknownAndForeign", func(t *testing.T) {
		a := seedProduct(t, store, alice.ID, "A", "")
		b := seedProduct(t, store, alice.ID, "B", "")
		x := seedProduct(t, store, bob.ID, "X", "")

		got, err := store.Products.GetByIDs(ctx, alice.ID, []string{b.ID, uuid.NewString(), x.ID, a.ID})
		require.NoError(t, err)

		ids := []string{}
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		sort.Strings(ids)
		want := []string{a.ID, b.ID}
		sort.Strings(want)
		assert.Equal(t, want, ids)

		empty, err := store.Products.GetByIDs(ctx, alice.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("BarcodeScopedPerOwner", func(t *testing.T) {
		first := seedProduct(t, store, alice.ID, "Milk", "4006381333931")

		clash := newProduct(alice.ID, "Milk again", "4006381333931")
		assert.ErrorIs(t, store.Products.Create(ctx, clash), model.ErrDuplicateBarcode)

		other := newProduct(bob.ID, "Bob's milk", "4006381333931")
		require.NoError(t, store.Products.Create(ctx, other))

		exists, err := store.Products.BarcodeExists(ctx, alice.ID, "4006381333931", "")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.Products.BarcodeExists(ctx, alice.ID, "4006381333931", first.ID)
		require.NoError(t, err)
		assert.False(t, exists, "a product never collides with itself")

		// Empty barcodes never collide.
		seedProduct(t, store, alice.ID, "No barcode 1", "")
		seedProduct(t, store, alice.ID, "No barcode 2", "")
	})

	t.Run("ProductUpdateAndDelete", func(t *testing.T) {
		p := seedProduct(t, store, alice.ID, "Bread", "111")
		p.Name = "Sourdough"
		p.Price = 4.5
		p.Barcode = ""
		p.UpdatedAt = time.Now().UTC()
		require.NoError(t, store.Products.Update(ctx, p))

		got, err := store.Products.GetByID(ctx, alice.ID, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Sourdough", got.Name)
		assert.Equal(t, 4.5, got.Price)
		assert.Empty(t, got.Barcode)

		require.NoError(t, store.Products.Delete(ctx, alice.ID, p.ID))
		got, err = store.Products.GetByID(ctx, alice.ID, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SearchEscapesInput", func(t *testing.T) {
		carol := seedUser(t, store, "carol@example.com")
		seedProduct(t, store, carol.ID, "Apple Juice", "")
		seedProduct(t, store, carol.ID, "100% Orange", "")
		withBarcode := seedProduct(t, store, carol.ID, "Plain", "ABC-998")

		got, err := store.Products.Search(ctx, carol.ID, "JUICE", 100)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Apple Juice", got[0].Name)

		got, err = store.Products.Search(ctx, carol.ID, "%", 100)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "100% Orange", got[0].Name)

		got, err = store.Products.Search(ctx, carol.ID, ".*", 100)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = store.Products.Search(ctx, carol.ID, "c-99", 100)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, withBarcode.ID, got[0].ID)

		got, err = store.Products.Search(ctx, alice.ID, "Orange", 100)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ProductListNewestFirst", func(t *testing.T) {
		dave := seedUser(t, store, "dave@example.com")
		base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
		for i, name := range []string{"old", "mid", "new"} {
			p := newProduct(dave.ID, name, "")
			p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, store.Products.Create(ctx, p))
		}

		got, err := store.Products.GetAll(ctx, dave.ID, 2, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "new", got[0].Name)
		assert.Equal(t, "mid", got[1].Name)

		got, err = store.Products.GetAll(ctx, dave.ID, 2, 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "old", got[0].Name)
	})

	t.Run("Flyers", func(t *testing.T) {
		name := "Promo name"
		price := 1.25
		now := time.Now().UTC().Truncate(time.Millisecond)
		flyer := &model.Flyer{
			ID:       uuid.NewString(),
			UserID:   alice.ID,
			Title:    "Weekly deals",
			Template: model.TemplateModern,
			Layout:   model.DefaultLayout(),
			BusinessInfo: model.BusinessInfo{
				Name:  "Corner Shop",
				Phone: "555-0100",
			},
			Products: []model.ProductSnapshot{
				{ProductID: "p1", Name: "Tea", Price: 2, Category: "Drinks", DisplayOrder: 0},
				{ProductID: "p2", Name: "Cake", Price: 3, Category: "Bakery", DisplayOrder: 1, DisplayName: &name, DisplayPrice: &price},
			},
			Status:    model.StatusDraft,
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, store.Flyers.Create(ctx, flyer))

		got, err := store.Flyers.GetByID(ctx, alice.ID, flyer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, flyer.Layout, got.Layout)
		assert.Equal(t, flyer.BusinessInfo, got.BusinessInfo)
		assert.Equal(t, flyer.Products, got.Products)
		assert.Nil(t, got.PublishedAt)

		foreign, err := store.Flyers.GetByID(ctx, bob.ID, flyer.ID)
		require.NoError(t, err)
		assert.Nil(t, foreign)

		empty := &model.Flyer{
			ID: uuid.NewString(), UserID: alice.ID, Title: "Empty", Template: model.TemplateClassic,
			Layout: model.DefaultLayout(), Status: model.StatusPublished,
			CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second),
		}
		require.NoError(t, store.Flyers.Create(ctx, empty))

		got, err = store.Flyers.GetByID(ctx, alice.ID, empty.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.NotNil(t, got.Products)
		assert.Empty(t, got.Products)

		all, err := store.Flyers.GetAll(ctx, alice.ID, model.FlyerFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, empty.ID, all[0].ID)

		published, err := store.Flyers.GetAll(ctx, alice.ID, model.FlyerFilter{Status: model.StatusPublished, Limit: 10})
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, empty.ID, published[0].ID)

		bobs, err := store.Flyers.GetAll(ctx, bob.ID, model.FlyerFilter{Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, bobs)

		flyer.Title = "Monthly deals"
		flyer.Products = []model.ProductSnapshot{}
		flyer.Status = model.StatusPublished
		flyer.PublishedAt = &now
		require.NoError(t, store.Flyers.Update(ctx, flyer))

		got, err = store.Flyers.GetByID(ctx, alice.ID, flyer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Monthly deals", got.Title)
		assert.Empty(t, got.Products)
		require.NotNil(t, got.PublishedAt)

		hijack := *flyer
		hijack.UserID = bob.ID
		assert.ErrorIs(t, store.Flyers.Update(ctx, &hijack), model.ErrFlyerNotFound)
		assert.ErrorIs(t, store.Flyers.Delete(ctx, bob.ID, flyer.ID), model.ErrFlyerNotFound)

		require.NoError(t, store.Flyers.Delete(ctx, alice.ID, flyer.ID))
		assert.ErrorIs(t, store.Flyers.Delete(ctx, alice.ID, flyer.ID), model.ErrFlyerNotFound)
	})
}

func newUser(email string) *model.User {
	now := time.Now().UTC()
	return &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func seedUser(t *testing.T, store *Store, email string) *model.User {
	t.Helper()
	u := newUser(email)
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func newProduct(ownerID, name, barcode string) *model.Product {
	now := time.Now().UTC()
	return &model.Product{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Name:      name,
		Price:     9.99,
		Barcode:   barcode,
		Category:  "General",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seedProduct(t *testing.T, store *Store, ownerID, name, barcode string) *model.Product {
	t.Helper()
	p := newProduct(ownerID, name, barcode)
	require.NoError(t, store.Products.Create(context.Background(), p))
	return p
}
