package charset

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUnknownLabel reports a label no decoder is registered for.
	ErrUnknownLabel = errors.New("unknown encoding label")
	// ErrInvalidBytes reports input that is not valid in the requested encoding.
	ErrInvalidBytes = errors.New("invalid byte sequence")
)

type decoderEntry struct {
	enc encoding.Encoding
	// utf8 marks encodings validated with utf8.Valid instead of replacement
	// character detection.
	utf8 bool
}

// aliases covers the labels the detector and the fallback list produce.
// gb2312 is served by the GBK decoder, which is a strict superset.
var aliases = map[string]decoderEntry{
	"utf-8":        {enc: unicode.UTF8, utf8: true},
	"utf8":         {enc: unicode.UTF8, utf8: true},
	"ascii":        {enc: unicode.UTF8, utf8: true},
	"us-ascii":     {enc: unicode.UTF8, utf8: true},
	"utf-8-sig":    {enc: unicode.UTF8BOM, utf8: true},
	"utf8-sig":     {enc: unicode.UTF8BOM, utf8: true},
	"gbk":          {enc: simplifiedchinese.GBK},
	"cp936":        {enc: simplifiedchinese.GBK},
	"gb2312":       {enc: simplifiedchinese.GBK},
	"gb18030":      {enc: simplifiedchinese.GB18030},
	"gb-18030":     {enc: simplifiedchinese.GB18030},
	"hz-gb-2312":   {enc: simplifiedchinese.HZGB2312},
	"big5":         {enc: traditionalchinese.Big5},
	"shift-jis":    {enc: japanese.ShiftJIS},
	"euc-jp":       {enc: japanese.EUCJP},
	"iso-2022-jp":  {enc: japanese.ISO2022JP},
	"euc-kr":       {enc: korean.EUCKR},
	"latin1":       {enc: charmap.ISO8859_1},
	"latin-1":      {enc: charmap.ISO8859_1},
	"iso-8859-1":   {enc: charmap.ISO8859_1},
	"cp1252":       {enc: charmap.Windows1252},
	"windows-1252": {enc: charmap.Windows1252},
	"utf-16le":     {enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	"utf-16be":     {enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
	"utf-16":       {enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
}

func resolve(label string) (decoderEntry, error) {
	key := NormalizeLabel(label)
	if entry, ok := aliases[key]; ok {
		return entry, nil
	}
	if enc, err := htmlindex.Get(key); err == nil && enc != nil {
		return decoderEntry{enc: enc, utf8: enc == unicode.UTF8}, nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return decoderEntry{enc: enc, utf8: enc == unicode.UTF8}, nil
	}
	return decoderEntry{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
}

// Lookup resolves label to an x/text encoding.
func Lookup(label string) (encoding.Encoding, error) {
	entry, err := resolve(label)
	if err != nil {
		return nil, err
	}
	return entry.enc, nil
}

// Known reports whether label resolves to a decoder.
func Known(label string) bool {
	_, err := resolve(label)
	return err == nil
}

// Decode converts raw to a UTF-8 string under label. Unlike the x/text
// decoders it fails on bytes that are invalid in the encoding rather than
// substituting U+FFFD.
func Decode(label string, raw []byte) (string, error) {
	entry, err := resolve(label)
	if err != nil {
		return "", err
	}
	if entry.utf8 && !utf8.Valid(raw) {
		return "", fmt.Errorf("decode %s: %w", label, ErrInvalidBytes)
	}
	out, err := entry.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w: %v", label, ErrInvalidBytes, err)
	}
	if !entry.utf8 && bytes.ContainsRune(out, utf8.RuneError) {
		return "", fmt.Errorf("decode %s: %w", label, ErrInvalidBytes)
	}
	return string(out), nil
}
