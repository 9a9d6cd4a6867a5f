package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hero-quest-backend/internal/config"
	"hero-quest-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	service := &RedisService{
		client: client,
		ctx:    ctx,
	}

	return service, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

func (s *RedisService) GetAccount(address string) (*models.PlayerAccount, error) {
	key := fmt.Sprintf(KeyAccount, address)

	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %v", err)
	}

	var account models.PlayerAccount
	if err := json.Unmarshal([]byte(data), &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %v", err)
	}

	return &account, nil
}

func (s *RedisService) SaveAccount(account *models.PlayerAccount) error {
	key := fmt.Sprintf(KeyAccount, account.Address)

	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %v", err)
	}

	return s.client.Set(s.ctx, key, data, 0).Err()
}

// createAccountScript stores the account and appends the address to the
// registry only if the address is free, so registration stays atomic and
// the registry holds each address at most once, in registration order.
var createAccountScript = redis.NewScript(`
	local accountKey = KEYS[1]
	local listKey = KEYS[2]

	if redis.call("EXISTS", accountKey) == 1 then
		return redis.error_reply("account exists")
	end

	redis.call("SET", accountKey, ARGV[1])
	redis.call("RPUSH", listKey, ARGV[2])

	return "OK"
`)

func (s *RedisService) CreateAccount(account *models.PlayerAccount) error {
	key := fmt.Sprintf(KeyAccount, account.Address)

	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %v", err)
	}

	err = createAccountScript.Run(s.ctx, s.client,
		[]string{key, KeyPlayerList}, data, account.Address).Err()
	if err != nil {
		if strings.Contains(err.Error(), "account exists") {
			return models.ErrAccountExists
		}
		return fmt.Errorf("failed to create account: %v", err)
	}

	return nil
}

func (s *RedisService) ListPlayers() ([]string, error) {
	addresses, err := s.client.LRange(s.ctx, KeyPlayerList, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %v", err)
	}

	return addresses, nil
}

func (s *RedisService) GetAccounts(addresses []string) ([]*models.PlayerAccount, error) {
	if len(addresses) == 0 {
		return []*models.PlayerAccount{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(addresses))

	for i, address := range addresses {
		key := fmt.Sprintf(KeyAccount, address)
		cmds[i] = pipe.Get(s.ctx, key)
	}

	_, err := pipe.Exec(s.ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("pipeline execution failed: %v", err)
	}

	var accounts []*models.PlayerAccount
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			continue
		}

		var account models.PlayerAccount
		if err := json.Unmarshal([]byte(data), &account); err != nil {
			continue
		}

		accounts = append(accounts, &account)
	}

	return accounts, nil
}

func (s *RedisService) IsAdmin(address string) (bool, error) {
	member, err := s.client.SIsMember(s.ctx, KeyAdminSet, address).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check admin set: %v", err)
	}

	return member, nil
}

func (s *RedisService) AddAdmin(address string) error {
	return s.client.SAdd(s.ctx, KeyAdminSet, address).Err()
}

func (s *RedisService) AppendLedger(entry *models.LedgerEntry) error {
	entryKey := fmt.Sprintf(KeyLedgerEntry, entry.ID)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger entry: %v", err)
	}

	if err := s.client.Set(s.ctx, entryKey, data, TTLLedgerEntry).Err(); err != nil {
		return fmt.Errorf("failed to save ledger entry: %v", err)
	}

	accountKey := fmt.Sprintf(KeyAccountLedger, entry.Address)
	score := float64(entry.CreatedAt)

	if err := s.client.ZAdd(s.ctx, accountKey, redis.Z{
		Score:  score,
		Member: entry.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to account ledger: %v", err)
	}

	// Keep only the last 100 entries per account
	s.client.ZRemRangeByRank(s.ctx, accountKey, 0, -101)

	return nil
}

func (s *RedisService) GetLedger(address string, limit int64) ([]*models.LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	accountKey := fmt.Sprintf(KeyAccountLedger, address)

	entryIDs, err := s.client.ZRevRange(s.ctx, accountKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry IDs: %v", err)
	}

	var entries []*models.LedgerEntry
	for _, entryID := range entryIDs {
		entryKey := fmt.Sprintf(KeyLedgerEntry, entryID)

		data, err := s.client.Get(s.ctx, entryKey).Result()
		if err != nil {
			continue
		}

		var entry models.LedgerEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			continue
		}

		entries = append(entries, &entry)
	}

	return entries, nil
}

func (s *RedisService) StoreUserSession(session *models.UserSession, expiry time.Duration) error {
	key := fmt.Sprintf(KeyUserSession, session.Address, session.SessionID)

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(s.ctx, key, data, expiry).Err()
}

func (s *RedisService) GetUserSession(address, sessionID string) (*models.UserSession, error) {
	key := fmt.Sprintf(KeyUserSession, address, sessionID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var session models.UserSession
	err = json.Unmarshal([]byte(data), &session)
	if err != nil {
		return nil, err
	}

	session.LastAccessed = time.Now()
	updatedData, _ := json.Marshal(session)
	s.client.Set(s.ctx, key, updatedData, TTLUserSession)

	return &session, nil
}

func (s *RedisService) DeleteUserSession(address, sessionID string) error {
	key := fmt.Sprintf(KeyUserSession, address, sessionID)
	return s.client.Del(s.ctx, key).Err()
}

func (s *RedisService) CheckRateLimit(address, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, address, action)

	count, err := s.client.Incr(s.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		s.client.Expire(s.ctx, key, window)
	}

	return count <= int64(limit), nil
}

func (s *RedisService) DeleteAccount(address string) error {
	key := fmt.Sprintf(KeyAccount, address)
	if err := s.client.Del(s.ctx, key).Err(); err != nil {
		return err
	}
	return s.client.LRem(s.ctx, KeyPlayerList, 0, address).Err()
}

func (s *RedisService) ClearRateLimit(address, action string) error {
	key := fmt.Sprintf(KeyRateLimit, address, action)
	return s.client.Del(s.ctx, key).Err()
}
