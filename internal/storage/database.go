package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"HandWash/internal/models"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrPresetNotFound = errors.New("storage: preset not found")

type Database struct {
	db *sql.DB
}

// Open 打开 path 处的数据库并建表, ":memory:" 可用于测试
func Open(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// 同一个内存数据库只能有一个连接
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}
	return database, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initTables() error {
	// 倒计时预设表
	_, err := d.db.Exec(`
        CREATE TABLE IF NOT EXISTS timer_presets (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE,
            total_seconds INTEGER NOT NULL,
            created_at DATETIME NOT NULL
        )
    `)
	if err != nil {
		return err
	}

	// 完成记录表
	_, err = d.db.Exec(`
        CREATE TABLE IF NOT EXISTS countdown_records (
            id TEXT PRIMARY KEY,
            preset TEXT NOT NULL,
            total_seconds INTEGER NOT NULL,
            started_at DATETIME NOT NULL,
            completed_at DATETIME NOT NULL
        )
    `)
	return err
}

// SavePreset 按名称插入或更新预设
func (d *Database) SavePreset(preset *models.TimerPreset) error {
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = time.Now().UTC()
	}
	_, err := d.db.Exec(`
        INSERT INTO timer_presets (name, total_seconds, created_at)
        VALUES (?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET total_seconds = excluded.total_seconds
    `, preset.Name, preset.TotalSeconds, preset.CreatedAt.UTC())
	if err != nil {
		return err
	}

	return d.db.QueryRow(`SELECT id FROM timer_presets WHERE name = ?`, preset.Name).Scan(&preset.ID)
}

func (d *Database) ListPresets() ([]*models.TimerPreset, error) {
	var presets []*models.TimerPreset
	rows, err := d.db.Query(`
        SELECT id, name, total_seconds, created_at
        FROM timer_presets
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p := &models.TimerPreset{}
		if err := rows.Scan(&p.ID, &p.Name, &p.TotalSeconds, &p.CreatedAt); err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

func (d *Database) DeletePreset(name string) error {
	result, err := d.db.Exec(`DELETE FROM timer_presets WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPresetNotFound
	}
	return nil
}

// SaveRecord 保存一次完成的倒计时, ID 为空时自动生成
func (d *Database) SaveRecord(record *models.CountdownRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	_, err := d.db.Exec(`
        INSERT INTO countdown_records (id, preset, total_seconds, started_at, completed_at)
        VALUES (?, ?, ?, ?, ?)
    `, record.ID, record.Preset, record.TotalSeconds, record.StartedAt.UTC(), record.CompletedAt.UTC())
	return err
}

// Stats 统计 since 之后开始的倒计时, since 为零值时统计全部
func (d *Database) Stats(since time.Time) (*models.CountdownStats, error) {
	stats := &models.CountdownStats{}
	today := startOfDay(time.Now()).UTC()

	err := d.db.QueryRow(`
        SELECT 
            COUNT(*) as runs,
            COALESCE(SUM(total_seconds), 0) as total_seconds
        FROM countdown_records
        WHERE started_at >= ?
    `, since.UTC()).Scan(&stats.TotalRuns, &stats.TotalSeconds)
	if err != nil {
		return nil, err
	}

	// 今日统计
	err = d.db.QueryRow(`
        SELECT 
            COUNT(*) as today_runs,
            COALESCE(SUM(total_seconds), 0) as today_seconds
        FROM countdown_records
        WHERE started_at >= ?
    `, today).Scan(&stats.TodayRuns, &stats.TodaySeconds)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
