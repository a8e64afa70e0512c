// Package notify entrega los eventos de liquidación (venta completada, stock bajo) a consumidores externos.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Canales (sufijos) publicados; el prefijo viene de REDIS_CHANNEL_PREFIX.
const (
	ChannelSaleCompleted = "sale.completed"
	ChannelStockLow      = "stock.low"
)

var _ ports.Notifier = (*RedisNotifier)(nil)

// publisher lo que usa el notifier de *redis.Client.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier publica cada evento como JSON en un canal Pub/Sub de Redis.
type RedisNotifier struct {
	rdb    publisher
	prefix string
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewRedisNotifier construye el notifier sobre un cliente ya conectado.
func NewRedisNotifier(rdb publisher, prefix string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, prefix: prefix}
}

func (n *RedisNotifier) channel(name string) string {
	if n.prefix == "" {
		return name
	}
	return n.prefix + "." + name
}

func (n *RedisNotifier) publish(ctx context.Context, name string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := n.rdb.Publish(ctx, n.channel(name), body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}
	return nil
}

// SaleCompleted publica el resumen de la venta.
func (n *RedisNotifier) SaleCompleted(ctx context.Context, sale *entity.Sale) error {
	return n.publish(ctx, ChannelSaleCompleted, NewSaleCompletedEvent(sale))
}

// StockLow publica la alerta de stock bajo.
func (n *RedisNotifier) StockLow(ctx context.Context, alert ports.LowStockAlert) error {
	return n.publish(ctx, ChannelStockLow, alert)
}
