package clickhouse

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"analytics-workers/config"
	"analytics-workers/models"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type Client struct {
	conn     driver.Conn
	database string
}

func NewClient(cfg config.ClickHouseConfig) (*Client, error) {
	opts := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		DialTimeout:  time.Second * 30,
	}

	// Native protocol on 9000 runs without TLS; 8443 is the HTTPS port.
	if cfg.Port == 8443 {
		opts.TLS = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{
		conn:     conn,
		database: cfg.Database,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// InsertUserHistory appends one row to the user-scoped event history log.
func (c *Client) InsertUserHistory(ctx context.Context, rec models.UserEventHistory) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.user_events_history (
			event_id, user_id, product_id, shop_id, action,
			country, city, ip_address, device_type, os, browser, user_agent,
			event_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.database)

	return c.conn.Exec(ctx, query,
		rec.EventID,
		rec.UserID,
		rec.ProductID,
		rec.ShopID,
		rec.Action,
		rec.Country,
		rec.City,
		rec.IPAddress,
		rec.DeviceType,
		rec.OS,
		rec.Browser,
		rec.UserAgent,
		rec.EventTime,
	)
}

// InsertProductInteraction appends one row to the product-scoped history log.
func (c *Client) InsertProductInteraction(ctx context.Context, rec models.ProductInteraction) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.product_interactions (
			event_id, user_id, product_id, action, event_time
		) VALUES (?, ?, ?, ?, ?)
	`, c.database)

	return c.conn.Exec(ctx, query,
		rec.EventID,
		rec.UserID,
		rec.ProductID,
		rec.Action,
		rec.EventTime,
	)
}
