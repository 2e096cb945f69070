// Package charset guesses and resolves the text encodings of schedule exports.
//
// Spreadsheet exports reach courseplan in whatever encoding the exporting
// machine defaulted to: UTF-8 with or without a byte order mark, GBK/GB2312
// from Chinese locales, or Latin-1/Windows-1252 from western ones. Detect
// inspects a bounded byte prefix with a statistical detector and returns a
// best guess; Candidates turns that guess into the ordered list of labels the
// extractor tries; Lookup and Decode map labels onto x/text decoders with
// strict handling of invalid byte sequences so a wrong guess is rejected
// instead of silently producing replacement characters.
package charset
