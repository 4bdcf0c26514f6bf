package repository

import "context"

// キーごとに値（シリアライズしたカート）を保存する約束
type KeyValueStore interface {
	// キーが無いときは found=false, err=nil
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
