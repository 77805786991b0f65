package store

const (
	readNotesQuery = `
		MATCH (n:Note)
		WHERE n.key IN $keys
		RETURN n.key AS key, n.name AS name, n.contents AS contents, n.etag AS etag
	`

	upsertNoteQuery = `
		MERGE (n:Note {key: $key})
		SET n.name = $name,
			n.contents = $contents,
			n.etag = $etag
		RETURN n.key AS key
	`

	casNoteQuery = `
		MATCH (n:Note {key: $key})
		WHERE n.etag = $expected
		SET n.name = $name,
			n.contents = $contents,
			n.etag = $etag
		RETURN n.key AS key
	`

	deleteNotesQuery = `
		MATCH (n:Note)
		WHERE n.key IN $keys
		DETACH DELETE n
	`
)
