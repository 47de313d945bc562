package infra_vector_cache

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/NidaEsenn/CineMatch/internal/model"
	"github.com/go-redis/redis"
)

// Driver memoizes movie vectors under a shared key prefix. It is a
// pure read-through accelerator: a miss or a broken entry reports
// "not cached" and the caller fetches fresh.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (d *Driver) Get(movieID model.MovieID) (model.Embedding, bool) {
	val, err := d.client.Get(d.fullKey(movieID)).Result()
	if err != nil {
		return nil, false
	}

	var e model.Embedding
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return nil, false
	}
	return e, true
}

func (d *Driver) Set(movieID model.MovieID, e model.Embedding) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return d.client.Set(d.fullKey(movieID), string(raw), d.ttl).Err()
}

func (d *Driver) fullKey(movieID model.MovieID) string {
	id := strconv.FormatInt(int64(movieID), 10)
	if d.key != "" {
		return d.key + ":" + id
	}
	return id
}
