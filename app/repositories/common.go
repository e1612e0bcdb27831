package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StoreTimeLayout is the timestamp format written to created_at columns.
const StoreTimeLayout = "2006-01-02 15:04:05"

var storeTimeLayouts = []string{
	StoreTimeLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// parseStoreTime accepts both the layout we write and the RFC 3339 text
// database/sql produces when a driver hands back a time.Time.
func parseStoreTime(value string) (time.Time, error) {
	for _, layout := range storeTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

func formatStoreTime(t time.Time) string {
	return t.Format(StoreTimeLayout)
}

var schemas = map[Dialect][]string{
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS post (
			id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
			title VARCHAR NOT NULL,
			body VARCHAR NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS comment (
			id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
			post_id INTEGER NOT NULL REFERENCES post(id),
			created_at DATETIME NOT NULL,
			name VARCHAR NOT NULL,
			website VARCHAR,
			"text" VARCHAR NOT NULL
		)`,
	},
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS post (
			id SERIAL PRIMARY KEY,
			title VARCHAR NOT NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS comment (
			id SERIAL PRIMARY KEY,
			post_id INTEGER NOT NULL REFERENCES post(id),
			created_at TIMESTAMP NOT NULL,
			name VARCHAR NOT NULL,
			website VARCHAR,
			"text" TEXT NOT NULL
		)`,
	},
}

// CreateSchema creates the post and comment tables when they are missing.
func (d *DB) CreateSchema(ctx context.Context) error {
	for _, ddl := range schemas[d.dialect] {
		if _, err := d.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("error creating tables: %w", err)
		}
	}
	return nil
}

type samplePost struct {
	title, body string
	comments    [][3]string
}

var samplePosts = []samplePost{
	{
		title: "Here's our first post",
		body: "This is the body of the first post.\n\n" +
			"It is split into paragraphs.",
		comments: [][3]string{
			{"Jimmy", "http://example.com/", "This is Jimmy's contribution"},
			{"Jonny", "http://anotherexample.com/", "This is a comment from Jonny"},
		},
	},
	{
		title: "Now for a second article",
		body:  "This is the body of the second post.\nThis is another paragraph.",
		comments: [][3]string{
			{"Sonny", "", "This is a comment from Sonny"},
		},
	},
	{
		title: "Here's a third post",
		body:  "This is the body of the third post.\nThis is split into paragraphs.",
	},
}

// Seed writes a handful of sample posts and comments. It is meant for a
// freshly created schema.
func (d *DB) Seed(ctx context.Context, now time.Time) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting seed: %w", err)
	}
	defer tx.Rollback()

	insertPost := d.rebind(`INSERT INTO post (title, body, created_at) VALUES (?, ?, ?)`)
	insertComment := d.rebind(`INSERT INTO comment (post_id, created_at, name, website, "text") VALUES (?, ?, ?, ?, ?)`)

	for i, p := range samplePosts {
		created := now.Add(time.Duration(i-len(samplePosts)) * 24 * time.Hour)
		var postID int64
		if d.dialect == DialectPostgres {
			err = tx.QueryRowContext(ctx, insertPost+" RETURNING id", p.title, p.body, formatStoreTime(created)).Scan(&postID)
		} else {
			var res sql.Result
			res, err = tx.ExecContext(ctx, insertPost, p.title, p.body, formatStoreTime(created))
			if err == nil {
				postID, err = res.LastInsertId()
			}
		}
		if err != nil {
			return fmt.Errorf("error seeding post %q: %w", p.title, err)
		}

		for j, c := range p.comments {
			at := created.Add(time.Duration(j+1) * time.Hour)
			if _, err := tx.ExecContext(ctx, insertComment, postID, formatStoreTime(at), c[0], c[1], c[2]); err != nil {
				return fmt.Errorf("error seeding comment for post %d: %w", postID, err)
			}
		}
	}

	return tx.Commit()
}
