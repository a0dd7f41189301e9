// Package titlekit joins the IMDb title.basics and title.ratings TSV dumps
// into a single stream of merged movie records.
//
// The pipeline is a straight line per dataset: parse tab-delimited lines
// against a fixed column schema, clean the raw text (null sentinels,
// booleans, numbers), bind to a typed record, and filter by the business
// rules. The two sides converge at a group store which cogroups records by
// title id; the cross product of matches per id is merged and written to a
// sink. Sources (file, s3), group stores (bolt, leveldb), and sinks (avro,
// kafka) live in subpackages; orchestration lives in Main.
package titlekit
