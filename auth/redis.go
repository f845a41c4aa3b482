package auth

import (
	"sync"

	"github.com/gomodule/redigo/redis"
)

// RedisStore keeps the gate flag in Redis. A single connection is
// enough for one flag; the mutex serializes handler goroutines on
// it.
type RedisStore struct {
	mu   sync.Mutex
	conn redis.Conn
}

func DialRedis(url string) (*RedisStore, error) {
	conn, err := redis.DialURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisStore{conn: conn}, nil
}

func (s *RedisStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := redis.String(s.conn.Do("GET", key))
	if err == redis.ErrNil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.conn.Do("SET", key, value)
	return err
}

func (s *RedisStore) Del(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.conn.Do("DEL", key)
	return err
}

func (s *RedisStore) Close() error {
	return s.conn.Close()
}
