/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package skin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "mediaskin/internal/log"
	"mediaskin/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexDirName holds derived data under the skin directory.
	IndexDirName  = ".msk"
	IndexFileName = "index.sqlite"

	// schemaVersion is the current index schema. Bump it together with a
	// step in runMigrations.
	schemaVersion = 2
)

// IndexPath returns the index database file of a skin directory.
func IndexPath(dir string) string {
	return filepath.Join(dir, IndexDirName, IndexFileName)
}

// Index is the SQLite catalogue of the scenes in one skin directory. It is
// derived data and can always be rebuilt from the scene files.
type Index struct {
	db  *sql.DB
	dir string
}

// SceneRow is one indexed scene file.
type SceneRow struct {
	ID       int64
	Name     string
	Path     string // relative to the skin directory
	Width    int
	Height   int
	Labels   int
	Problems int
}

// Match is a label found by Find.
type Match struct {
	Scene   string
	Path    string
	LabelID int
	Name    string
	Snippet string
}

// AnimationRow is one indexed animation. LabelID is 0 for window
// animations.
type AnimationRow struct {
	Scene     string
	LabelID   int
	Type      string
	Effect    string
	Time      int
	Delay     int
	Condition string
}

// OpenIndex opens or creates the index of dir, enables WAL and brings the
// schema up to date.
func OpenIndex(dir string) (*Index, error) {
	l := applog.WithOperation(applog.WithComponent("skin"), "index_open").With(slog.String("dir", dir))
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("skin directory is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, IndexDirName), 0o755); err != nil {
		l.Error("create index dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create %s dir: %w", IndexDirName, err)
	}

	path := IndexPath(dir)
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path)))
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps the shared cache and WAL mode on a single handle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}
	steps := []struct {
		name string
		run  func(context.Context, *sql.DB) error
	}{
		{"enable WAL", func(ctx context.Context, db *sql.DB) error {
			_, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
			return err
		}},
		{"version table", ensureVersion},
		{"index tables", ensureIndexSchema},
		{"migrations", runMigrations},
	}
	for _, st := range steps {
		if err := st.run(ctx, db); err != nil {
			_ = db.Close()
			l.Error("index setup failed", slog.String("step", st.name), slog.Any("err", err))
			return nil, fmt.Errorf("%s: %w", st.name, err)
		}
	}
	l.Debug("index ready", slog.String("path", path))
	return &Index{db: db, dir: dir}, nil
}

func (x *Index) Close() error { return x.db.Close() }

// Dir is the skin directory the index describes.
func (x *Index) Dir() string { return x.dir }

// SchemaVersion reports the schema recorded in the version table.
func (x *Index) SchemaVersion(ctx context.Context) (int, error) {
	return readSchema(ctx, x.db)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readSchema(ctx context.Context, q queryRower) (int, error) {
	var v int
	if err := q.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

func stamp() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// ensureVersion creates the meta and version tables. A fresh database is
// recorded at schema 1 so every migration step runs on it; an existing one
// gets the running binary's version.
func ensureVersion(ctx context.Context, db *sql.DB) error {
	for _, q := range []string{
		`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);`,
		`CREATE TABLE IF NOT EXISTS version (
			id         INTEGER PRIMARY KEY CHECK(id=1),
			schema     INTEGER NOT NULL,
			app        TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create version tables: %w", err)
		}
	}
	now := stamp()
	_, err := db.ExecContext(ctx, `
INSERT INTO version (id, schema, app, created_at, updated_at) VALUES (1, 1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET app=excluded.app, updated_at=excluded.updated_at`,
		version.String(), now, now)
	if err != nil {
		return fmt.Errorf("record version: %w", err)
	}
	return nil
}

// migrations maps a schema version to the statements that reach it from
// the previous one.
var migrations = map[int][]string{
	2: {
		`CREATE INDEX IF NOT EXISTS idx_animations_type ON animations(type);`,
		`CREATE INDEX IF NOT EXISTS idx_labels_scene ON labels(scene_id);`,
	},
}

// runMigrations steps the schema up to schemaVersion, one transaction per
// step. Databases written by a newer binary are left alone.
func runMigrations(ctx context.Context, db *sql.DB) error {
	cur, err := readSchema(ctx, db)
	if err != nil {
		return err
	}
	for ; cur < schemaVersion; cur++ {
		if err := migrateTo(ctx, db, cur+1); err != nil {
			return fmt.Errorf("migration %d: %w", cur+1, err)
		}
	}
	return nil
}

func migrateTo(ctx context.Context, db *sql.DB, next int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, q := range migrations[next] {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, stamp()); err != nil {
		return err
	}
	return tx.Commit()
}

// setMeta stores one key of the meta table.
func setMeta(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value)
	return err
}

// LastRebuild returns when Rebuild last completed, or the zero time when
// the index was never built.
func (x *Index) LastRebuild(ctx context.Context) (time.Time, error) {
	var v string
	err := x.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key='rebuilt_at'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read meta: %w", err)
	}
	return time.Parse(time.RFC3339Nano, v)
}

// Stale reports whether any scene file in the skin directory changed after
// the last rebuild, or the index was never built.
func (x *Index) Stale(ctx context.Context) (bool, error) {
	at, err := x.LastRebuild(ctx)
	if err != nil || at.IsZero() {
		return true, err
	}
	changed := errors.New("changed")
	err = walkScenes(x.dir, func(path string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(at) {
			return changed
		}
		return nil
	})
	if errors.Is(err, changed) {
		return true, nil
	}
	return false, err
}

// walkScenes calls fn for every .yaml or .yml file under dir, skipping
// dot directories such as the index directory itself.
func walkScenes(dir string, fn func(path string, d fs.DirEntry) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return fn(path, d)
		}
		return nil
	})
}

func ensureIndexSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS scenes (
			scene_id INTEGER PRIMARY KEY,
			name     TEXT    NOT NULL,
			path     TEXT    NOT NULL UNIQUE,
			width    INTEGER NOT NULL,
			height   INTEGER NOT NULL,
			problems INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS labels (
			row_id   INTEGER PRIMARY KEY,
			scene_id INTEGER NOT NULL,
			label_id INTEGER NOT NULL,
			name     TEXT,
			font     TEXT,
			visible  TEXT,
			text     TEXT,
			FOREIGN KEY(scene_id) REFERENCES scenes(scene_id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS animations (
			row_id    INTEGER PRIMARY KEY,
			scene_id  INTEGER NOT NULL,
			label_id  INTEGER NOT NULL DEFAULT 0,
			type      TEXT    NOT NULL,
			effect    TEXT    NOT NULL,
			time_ms   INTEGER NOT NULL,
			delay_ms  INTEGER NOT NULL,
			condition TEXT,
			FOREIGN KEY(scene_id) REFERENCES scenes(scene_id) ON DELETE CASCADE
		);`,
		// FTS5 over label names and text. The labels table is the external
		// content so snippet() can read it back; triggers keep it in sync.
		`CREATE VIRTUAL TABLE IF NOT EXISTS fts_labels USING fts5(
			name,
			text,
			content='labels',
			content_rowid='row_id',
			tokenize = 'unicode61'
		);`,
		`CREATE TRIGGER IF NOT EXISTS labels_ai AFTER INSERT ON labels BEGIN
			INSERT INTO fts_labels(rowid, name, text) VALUES (new.row_id, new.name, new.text);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS labels_ad AFTER DELETE ON labels BEGIN
			INSERT INTO fts_labels(fts_labels, rowid, name, text) VALUES ('delete', old.row_id, old.name, old.text);
		END;`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure index schema: %w", err)
		}
	}
	return nil
}

// Rebuild rescans the skin directory and replaces the index content in a
// single transaction. Files that fail to decode, or decode to something
// without labels or animations, are not scenes and are skipped.
func (x *Index) Rebuild(ctx context.Context) (int, error) {
	l := applog.WithOperation(applog.WithComponent("skin"), "index_rebuild").With(slog.String("dir", x.dir))
	var scenes []*Scene
	var problems [][]Error
	err := walkScenes(x.dir, func(path string, _ fs.DirEntry) error {
		sc, errs, err := Load(path)
		if err != nil {
			l.Debug("skipping file", slog.String("file", path), slog.Any("err", err))
			return nil
		}
		if len(sc.Labels) == 0 && len(sc.Animations) == 0 {
			return nil
		}
		scenes = append(scenes, sc)
		problems = append(problems, errs)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan skin dir: %w", err)
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, q := range []string{"DELETE FROM animations;", "DELETE FROM labels;", "DELETE FROM scenes;"} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return 0, fmt.Errorf("clear index: %w", err)
		}
	}
	insScene, err := tx.PrepareContext(ctx, "INSERT INTO scenes(name, path, width, height, problems) VALUES(?,?,?,?,?);")
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer insScene.Close()
	insLabel, err := tx.PrepareContext(ctx, "INSERT INTO labels(scene_id, label_id, name, font, visible, text) VALUES(?,?,?,?,?,?);")
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer insLabel.Close()
	insAnim, err := tx.PrepareContext(ctx, "INSERT INTO animations(scene_id, label_id, type, effect, time_ms, delay_ms, condition) VALUES(?,?,?,?,?,?,?);")
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer insAnim.Close()

	for i, sc := range scenes {
		rel, err := filepath.Rel(x.dir, sc.Path)
		if err != nil {
			rel = sc.Path
		}
		res, err := insScene.ExecContext(ctx, sc.Name, filepath.ToSlash(rel), sc.Width, sc.Height, len(problems[i]))
		if err != nil {
			return 0, fmt.Errorf("insert scene %s: %w", sc.Name, err)
		}
		sceneID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("scene id: %w", err)
		}
		insertAnims := func(labelID int, as []AnimSpec) error {
			for _, a := range as {
				if _, err := insAnim.ExecContext(ctx, sceneID, labelID, strings.ToLower(a.Type), strings.ToLower(a.Effect), a.Time, a.Delay, a.Condition); err != nil {
					return fmt.Errorf("insert animation: %w", err)
				}
			}
			return nil
		}
		if err := insertAnims(0, sc.Animations); err != nil {
			return 0, err
		}
		for _, lb := range sc.Labels {
			if _, err := insLabel.ExecContext(ctx, sceneID, lb.ID, lb.Name, lb.Font, lb.Visible, lb.Text); err != nil {
				return 0, fmt.Errorf("insert label: %w", err)
			}
			if err := insertAnims(lb.ID, lb.Animations); err != nil {
				return 0, err
			}
		}
	}
	if err := setMeta(ctx, tx, "rebuilt_at", stamp()); err != nil {
		return 0, fmt.Errorf("record rebuild: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	l.Info("index rebuilt", slog.Int("scenes", len(scenes)))
	return len(scenes), nil
}

// Scenes lists the indexed scenes by path.
func (x *Index) Scenes(ctx context.Context) ([]SceneRow, error) {
	rows, err := x.db.QueryContext(ctx, `SELECT s.scene_id, s.name, s.path, s.width, s.height, s.problems,
			(SELECT COUNT(*) FROM labels l WHERE l.scene_id = s.scene_id)
		FROM scenes s ORDER BY s.path`)
	if err != nil {
		return nil, fmt.Errorf("scenes query: %w", err)
	}
	defer rows.Close()
	var out []SceneRow
	for rows.Next() {
		var r SceneRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Path, &r.Width, &r.Height, &r.Problems, &r.Labels); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Find runs an FTS5 query over label names and text. Snippets mark the
// matched terms with [ ].
func (x *Index) Find(ctx context.Context, query string, limit int) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 {
		limit = 100
	}
	q := `SELECT s.name, s.path, l.label_id, COALESCE(l.name,''), snippet(fts_labels, -1, '[', ']', '…', 10)
		FROM fts_labels
		JOIN labels l ON fts_labels.rowid = l.row_id
		JOIN scenes s ON s.scene_id = l.scene_id
		WHERE fts_labels MATCH ?
		ORDER BY rank, s.path, l.label_id
		LIMIT ?`
	rows, err := x.db.QueryContext(ctx, q, query, limit)
	if err != nil {
		return nil, fmt.Errorf("find query: %w", err)
	}
	defer rows.Close()
	var out []Match
	for rows.Next() {
		var m Match
		var sn sql.NullString
		if err := rows.Scan(&m.Scene, &m.Path, &m.LabelID, &m.Name, &sn); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		m.Snippet = sn.String
		out = append(out, m)
	}
	return out, rows.Err()
}

// AnimationsByType lists animations of one type ("visiblechange" is
// stored as written). An empty type lists all of them.
func (x *Index) AnimationsByType(ctx context.Context, typ string) ([]AnimationRow, error) {
	q := `SELECT s.name, a.label_id, a.type, a.effect, a.time_ms, a.delay_ms, COALESCE(a.condition,'')
		FROM animations a JOIN scenes s ON s.scene_id = a.scene_id`
	var args []any
	if t := strings.ToLower(strings.TrimSpace(typ)); t != "" {
		q += " WHERE a.type = ?"
		args = append(args, t)
	}
	q += " ORDER BY s.path, a.label_id, a.row_id"
	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("animations query: %w", err)
	}
	defer rows.Close()
	var out []AnimationRow
	for rows.Next() {
		var r AnimationRow
		if err := rows.Scan(&r.Scene, &r.LabelID, &r.Type, &r.Effect, &r.Time, &r.Delay, &r.Condition); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DetectAndRebuild checks the index of dir for corruption or a missing
// schema. A damaged file is backed up to .msk/backups and replaced by a
// fresh index. It returns the open index and whether it was rebuilt.
func DetectAndRebuild(ctx context.Context, dir string) (*Index, bool, error) {
	path := IndexPath(dir)
	x, err := OpenIndex(dir)
	if err == nil {
		if x.healthy(ctx) {
			return x, false, nil
		}
		_ = x.Close()
	}
	applog.WithComponent("skin").Warn("index damaged, rebuilding", slog.String("path", path), slog.Any("err", err))
	backupIndexFile(path)
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		_ = os.Remove(p)
	}
	x, err = OpenIndex(dir)
	if err != nil {
		return nil, false, fmt.Errorf("reopen index: %w", err)
	}
	if _, err := x.Rebuild(ctx); err != nil {
		_ = x.Close()
		return nil, false, err
	}
	return x, true, nil
}

func (x *Index) healthy(ctx context.Context) bool {
	var chk string
	if err := x.db.QueryRowContext(ctx, `PRAGMA quick_check;`).Scan(&chk); err != nil || !strings.Contains(strings.ToLower(chk), "ok") {
		return false
	}
	for _, t := range []string{"scenes", "labels", "animations"} {
		if _, err := x.db.ExecContext(ctx, "SELECT 1 FROM "+t+" LIMIT 1;"); err != nil {
			return false
		}
	}
	return true
}

// backupIndexFile copies the index file into a timestamped backup.
func backupIndexFile(indexPath string) {
	bdir := filepath.Join(filepath.Dir(indexPath), "backups")
	_ = os.MkdirAll(bdir, 0o755)
	stamp := time.Now().Format("20060102-150405")
	bak := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", filepath.Base(indexPath), stamp))
	if data, err := os.ReadFile(indexPath); err == nil {
		_ = os.WriteFile(bak, data, 0o644)
	}
}
