package store

// DBSchemaVersion is the compiled schema version. Bumping it forces a full
// rebuild of an on-disk store whose recorded version no longer matches
// (§4.3); there is no migration path.
const DBSchemaVersion = 10

// schemaDDL (re)creates every table this package owns. It is executed as one
// multi-statement Exec, not wrapped in a transaction; the caller is expected
// to have already dropped any existing tables on a version mismatch.
const schemaDDL = `
CREATE TABLE version (
	version INTEGER NOT NULL
);

CREATE TABLE member (
	member_id           INTEGER PRIMARY KEY,
	display_name        TEXT,
	bungie_display_name TEXT,
	code                TEXT,
	platform_id         INTEGER NOT NULL
);

CREATE TABLE character (
	character_id INTEGER PRIMARY KEY,
	member_id    INTEGER NOT NULL,
	class        INTEGER NOT NULL,
	FOREIGN KEY(member_id) REFERENCES member(member_id)
);
CREATE INDEX idx_character_member ON character(member_id);

CREATE TABLE sync (
	member_id          INTEGER PRIMARY KEY,
	last_sync_timestamp TEXT
);

CREATE TABLE activity (
	activity_id            INTEGER PRIMARY KEY,
	period                 TEXT NOT NULL,
	mode                   INTEGER NOT NULL,
	platform_id            INTEGER NOT NULL,
	director_activity_hash INTEGER NOT NULL,
	reference_id           INTEGER NOT NULL
);
CREATE INDEX idx_activity_period ON activity(period);

CREATE TABLE modes (
	activity_id INTEGER NOT NULL,
	mode_id     INTEGER NOT NULL,
	PRIMARY KEY(activity_id, mode_id)
);
CREATE INDEX idx_modes_mode ON modes(mode_id);

CREATE TABLE team_result (
	activity_id INTEGER NOT NULL,
	team_id     INTEGER NOT NULL,
	name        TEXT,
	score       REAL,
	standing    INTEGER,
	PRIMARY KEY(activity_id, team_id)
);

CREATE TABLE activity_queue (
	activity_id  INTEGER NOT NULL,
	character_id INTEGER NOT NULL,
	synced       INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY(activity_id, character_id)
);
CREATE INDEX idx_activity_queue_character_synced ON activity_queue(character_id, synced);

CREATE TABLE character_activity_stats (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	character_id         INTEGER NOT NULL,
	activity_id          INTEGER NOT NULL,
	member_id            INTEGER NOT NULL,
	standing             INTEGER NOT NULL,
	completion_reason    INTEGER NOT NULL,
	team                 INTEGER NOT NULL,
	assists              REAL NOT NULL DEFAULT 0,
	score                INTEGER NOT NULL DEFAULT 0,
	kills                INTEGER NOT NULL DEFAULT 0,
	deaths               INTEGER NOT NULL DEFAULT 0,
	opponents_defeated   INTEGER NOT NULL DEFAULT 0,
	completed            INTEGER NOT NULL DEFAULT 0,
	start_seconds        INTEGER NOT NULL DEFAULT 0,
	duration_seconds     INTEGER NOT NULL DEFAULT 0,
	time_played_seconds  INTEGER NOT NULL DEFAULT 0,
	player_count         INTEGER NOT NULL DEFAULT 0,
	team_score           INTEGER NOT NULL DEFAULT 0,
	light_level          INTEGER NOT NULL DEFAULT 0,
	emblem_hash          INTEGER NOT NULL DEFAULT 0,
	fireteam_id          INTEGER NOT NULL DEFAULT 0,
	precision_kills      INTEGER NOT NULL DEFAULT 0,
	weapon_kills_ability INTEGER NOT NULL DEFAULT 0,
	weapon_kills_grenade INTEGER NOT NULL DEFAULT 0,
	weapon_kills_melee   INTEGER NOT NULL DEFAULT 0,
	weapon_kills_super   INTEGER NOT NULL DEFAULT 0,
	all_medals_earned    INTEGER NOT NULL DEFAULT 0,
	UNIQUE(character_id, activity_id)
);
CREATE INDEX idx_cas_activity ON character_activity_stats(activity_id);
CREATE INDEX idx_cas_member ON character_activity_stats(member_id);

CREATE TABLE medal_result (
	character_activity_stats_id INTEGER NOT NULL,
	medal_reference_id          INTEGER NOT NULL,
	count                       INTEGER NOT NULL,
	FOREIGN KEY(character_activity_stats_id) REFERENCES character_activity_stats(id)
);

CREATE TABLE weapon_result (
	character_activity_stats_id INTEGER NOT NULL,
	weapon_reference_id         INTEGER NOT NULL,
	kills                       INTEGER NOT NULL DEFAULT 0,
	precision_kills             INTEGER NOT NULL DEFAULT 0,
	precision_ratio             REAL NOT NULL DEFAULT 0,
	FOREIGN KEY(character_activity_stats_id) REFERENCES character_activity_stats(id)
);

INSERT INTO version (version) VALUES (` + schemaVersionLiteral + `);
`

// schemaVersionLiteral keeps the seed row in schemaDDL textually in sync with
// DBSchemaVersion without needing fmt.Sprintf at init time.
const schemaVersionLiteral = "10"

var dropAllTablesDDL = []string{
	`DROP TABLE IF EXISTS weapon_result`,
	`DROP TABLE IF EXISTS medal_result`,
	`DROP TABLE IF EXISTS character_activity_stats`,
	`DROP TABLE IF EXISTS activity_queue`,
	`DROP TABLE IF EXISTS team_result`,
	`DROP TABLE IF EXISTS modes`,
	`DROP TABLE IF EXISTS activity`,
	`DROP TABLE IF EXISTS sync`,
	`DROP TABLE IF EXISTS character`,
	`DROP TABLE IF EXISTS member`,
	`DROP TABLE IF EXISTS version`,
}
