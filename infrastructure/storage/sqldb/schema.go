package sqldb

// schema mirrors the subset of the wiki database the feed reads. It is only
// created for development databases; production wikis already have it.
const schema = `
CREATE TABLE IF NOT EXISTS page (
	page_id INTEGER PRIMARY KEY,
	page_namespace INTEGER NOT NULL,
	page_title TEXT NOT NULL,
	UNIQUE (page_namespace, page_title)
);

CREATE TABLE IF NOT EXISTS categorylinks (
	cl_from INTEGER NOT NULL,
	cl_to TEXT NOT NULL,
	PRIMARY KEY (cl_from, cl_to)
);

CREATE TABLE IF NOT EXISTS recentchanges (
	rc_id INTEGER PRIMARY KEY,
	rc_timestamp TIMESTAMP NOT NULL,
	rc_namespace INTEGER NOT NULL,
	rc_title TEXT NOT NULL,
	rc_cur_id INTEGER NOT NULL DEFAULT 0,
	rc_user_text TEXT NOT NULL DEFAULT '',
	rc_comment TEXT NOT NULL DEFAULT '',
	rc_this_oldid INTEGER NOT NULL DEFAULT 0,
	rc_last_oldid INTEGER NOT NULL DEFAULT 0,
	rc_type INTEGER NOT NULL DEFAULT 0,
	rc_minor INTEGER NOT NULL DEFAULT 0,
	rc_bot INTEGER NOT NULL DEFAULT 0,
	rc_old_len INTEGER NOT NULL DEFAULT 0,
	rc_new_len INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS rc_timestamp_idx ON recentchanges (rc_timestamp);
CREATE INDEX IF NOT EXISTS cl_to_idx ON categorylinks (cl_to);
`
