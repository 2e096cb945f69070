// Package catalogdb loads generated insert statements into a SQLite file.
//
// Open creates the major, course and major_course tables through embedded
// migrations tracked in schema_migrations. Apply replaces the table contents
// with one batch of statements inside a single transaction, so a failed
// statement leaves the previous contents untouched. Associations whose
// course code has no course statement in the batch are skipped with a
// warning instead of tripping the foreign key. ReadStatements and LoadDir
// parse the .sql files the output writer produced.
package catalogdb
