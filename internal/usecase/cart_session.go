package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/LCtech96/EmilyBoutique/internal/domain/cart"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"

	gocache "github.com/patrickmn/go-cache"
)

// セッションごとのカートを保持。同じセッションの呼び出しは直列化し、
// アイドルになったらメモリから外して次のリクエストでstoreから読み直す
type CartSessions struct {
	store     repo.KeyValueStore
	namespace string
	report    cart.FailureReporter

	mu   sync.Mutex
	live *gocache.Cache
}

type cartSession struct {
	mu   sync.Mutex
	cart *cart.Cart
}

func NewCartSessions(store repo.KeyValueStore, namespace string, idleTTL time.Duration, report cart.FailureReporter) *CartSessions {
	return &CartSessions{
		store:     store,
		namespace: namespace,
		report:    report,
		live:      gocache.New(idleTTL, idleTTL),
	}
}

// storeのキー（namespace:sessionID）
func (s *CartSessions) Key(sessionID string) string {
	return s.namespace + ":" + sessionID
}

// セッションのカートを排他的に持ったままfnを実行
func (s *CartSessions) With(ctx context.Context, sessionID string, fn func(c *cart.Cart) error) error {
	sess := s.session(ctx, sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.cart)
}

func (s *CartSessions) session(ctx context.Context, sessionID string) *cartSession {
	s.mu.Lock()
	if v, ok := s.live.Get(sessionID); ok {
		sess := v.(*cartSession)
		// アイドル期限を延長
		s.live.SetDefault(sessionID, sess)
		s.mu.Unlock()
		return sess
	}

	// 読み込み前に登録して、同時リクエストはsess.muで待たせる
	sess := &cartSession{}
	sess.mu.Lock()
	s.live.SetDefault(sessionID, sess)
	s.mu.Unlock()

	sess.cart = cart.Load(ctx, s.Key(sessionID), s.store, s.report)
	sess.mu.Unlock()
	return sess
}
