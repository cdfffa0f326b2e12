package services

import (
	"time"

	"spinwin/internal/models"
	"spinwin/internal/repositories/memory"
	"spinwin/pkg/logger"
)

var fixedNow = time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

func newTestStore(docs ...map[string]interface{}) *memory.Store {
	store := memory.NewStore()
	store.AddLogin(models.Login{Username: "admin", Password: "secret", RouteName: "all"})
	store.AddLogin(models.Login{Username: "shopa", Password: "secret", RouteName: "Shop-A"})
	store.AddLogin(models.Login{Username: "shopb", Password: "secret", RouteName: "shop-b"})
	for _, doc := range docs {
		store.AddSpin(doc)
	}
	return store
}

func newTestEngine(store *memory.Store) *Engine {
	return NewEngine(memory.NewSpinRepository(store), "₹", logger.NewNop()).
		WithClock(func() time.Time { return fixedNow })
}

func spinDoc(route string, at time.Time, fields map[string]interface{}) map[string]interface{} {
	doc := map[string]interface{}{
		"routeName": route,
		"createdAt": at,
	}
	for k, v := range fields {
		doc[k] = v
	}
	return doc
}
