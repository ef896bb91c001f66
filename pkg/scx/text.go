package scx

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Text blobs in a scenario are stored in the code page of the editor that
// saved them. The format does not record which one, so callers pick it.
var codePages = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"gbk":          simplifiedchinese.GBK,
	"big5":         traditionalchinese.Big5,
	"shift-jis":    japanese.ShiftJIS,
	"euc-kr":       korean.EUCKR,
}

// CodePages returns the names accepted by DecodeText and EncodeText.
func CodePages() []string {
	names := make([]string, 0, len(codePages))
	for name := range codePages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupCodePage(name string) (encoding.Encoding, error) {
	enc, ok := codePages[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown code page %q", name)
	}
	return enc, nil
}

// DecodeText converts a stored blob to a string, stopping at the first NUL.
func DecodeText(b []byte, codePage string) (string, error) {
	enc, err := lookupCodePage(codePage)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}

// EncodeText converts s to a NUL-terminated blob in the given code page.
func EncodeText(s, codePage string) ([]byte, error) {
	enc, err := lookupCodePage(codePage)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}
	return append(out, 0), nil
}
