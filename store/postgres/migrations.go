package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Binspire store (PostgreSQL).
var Migrations = migrate.NewGroup("binspire")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_enums",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DO $$ BEGIN
    CREATE TYPE system_entity AS ENUM (
        'userManagement', 'trashbinManagement', 'settingsManagement',
        'dashboardManagement', 'boardManagement', 'issueManagement',
        'activityManagement', 'historyManagement', 'accessRequestsManagement',
        'invitationsManagement', 'collectionsManagement', 'mapManagement',
        'greenHeartsManagement', 'authentication', 'authorization'
    );
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

DO $$ BEGIN
    CREATE TYPE audit_action AS ENUM (
        'create', 'update', 'delete', 'archive', 'restore', 'login', 'logout',
        'invite', 'accept_invite', 'reject_invite', 'approve_request', 'reject_request'
    );
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

DO $$ BEGIN
    CREATE TYPE issue_status AS ENUM ('open', 'in_progress', 'resolved', 'closed');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;

DO $$ BEGIN
    CREATE TYPE priority_scores AS ENUM ('low', 'medium', 'high', 'critical');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TYPE IF EXISTS priority_scores;
DROP TYPE IF EXISTS issue_status;
DROP TYPE IF EXISTS audit_action;
DROP TYPE IF EXISTS system_entity;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_organization",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS organization (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT NOT NULL,
    slug        TEXT NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT now(),
    updated_at  TIMESTAMP NOT NULL,

    CONSTRAINT organization_email_unique UNIQUE (email)
);

CREATE INDEX IF NOT EXISTS idx_organization_created ON organization (created_at DESC, id DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS organization`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_user",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS "user" (
    id              TEXT PRIMARY KEY,
    org_id          TEXT NOT NULL,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL,
    email_verified  BOOLEAN NOT NULL,
    image           TEXT,
    created_at      TIMESTAMP NOT NULL DEFAULT now(),
    updated_at      TIMESTAMP NOT NULL,

    CONSTRAINT user_email_unique UNIQUE (email),
    CONSTRAINT user_org_id_organization_id_fk FOREIGN KEY (org_id) REFERENCES organization (id)
);

CREATE INDEX IF NOT EXISTS idx_user_org ON "user" (org_id);
CREATE INDEX IF NOT EXISTS idx_user_created ON "user" (created_at DESC, id DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS "user"`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_audit",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS audit (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    org_id      TEXT NOT NULL,
    title       TEXT NOT NULL,
    entity      system_entity NOT NULL,
    changes     JSONB NOT NULL DEFAULT '{"after": null, "before": null}',
    action      audit_action NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT now(),
    updated_at  TIMESTAMP NOT NULL,

    CONSTRAINT audit_user_id_user_id_fk FOREIGN KEY (user_id) REFERENCES "user" (id) ON DELETE CASCADE,
    CONSTRAINT audit_org_id_organization_id_fk FOREIGN KEY (org_id) REFERENCES organization (id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_audit_org ON audit (org_id);
CREATE INDEX IF NOT EXISTS idx_audit_user ON audit (user_id);
CREATE INDEX IF NOT EXISTS idx_audit_created ON audit (created_at DESC, id DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS audit`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_history",
			Version: "20250101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS history (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    entity      system_entity NOT NULL,
    org_id      TEXT NOT NULL,
    user_id     TEXT NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT now(),
    updated_at  TIMESTAMP NOT NULL,

    CONSTRAINT history_org_id_organization_id_fk FOREIGN KEY (org_id) REFERENCES organization (id) ON DELETE CASCADE,
    CONSTRAINT history_user_id_user_id_fk FOREIGN KEY (user_id) REFERENCES "user" (id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_history_org ON history (org_id);
CREATE INDEX IF NOT EXISTS idx_history_user ON history (user_id);
CREATE INDEX IF NOT EXISTS idx_history_created ON history (created_at DESC, id DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS history`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_issues",
			Version: "20250101000006",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS issues (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL,
    entity       system_entity NOT NULL,
    priority     priority_scores NOT NULL DEFAULT 'medium',
    status       issue_status NOT NULL DEFAULT 'open',
    org_id       TEXT NOT NULL,
    created_at   TIMESTAMP NOT NULL DEFAULT now(),
    updated_at   TIMESTAMP NOT NULL,

    CONSTRAINT issues_org_id_organization_id_fk FOREIGN KEY (org_id) REFERENCES organization (id) ON DELETE CASCADE,
    CONSTRAINT issues_user_id_user_id_fk FOREIGN KEY (user_id) REFERENCES "user" (id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_issues_org ON issues (org_id);
CREATE INDEX IF NOT EXISTS idx_issues_user ON issues (user_id);
CREATE INDEX IF NOT EXISTS idx_issues_status ON issues (org_id, status);
CREATE INDEX IF NOT EXISTS idx_issues_created ON issues (created_at DESC, id DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS issues`)
				return err
			},
		},
	)
}
