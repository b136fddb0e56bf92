package entity

import (
	"errors"
	"strings"
)

// tagDelimiter - разделитель тегов в колонке places.tags
const tagDelimiter = ","

// ErrTagDelimiter возвращается при попытке сохранить тег,
// содержащий разделитель: такой тег сломал бы декодирование.
var ErrTagDelimiter = errors.New("tag must not contain a comma")

// EncodeTags кодирует теги в строку для хранения.
// Пустые теги отбрасываются, у остальных обрезаются пробелы.
func EncodeTags(tags []string) (string, error) {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if strings.Contains(tag, tagDelimiter) {
			return "", ErrTagDelimiter
		}
		cleaned = append(cleaned, tag)
	}

	return strings.Join(cleaned, tagDelimiter), nil
}

// DecodeTags декодирует строку тегов в упорядоченный список.
// Пустая строка означает место без тегов и декодируется в пустой список,
// а не в [""], как дал бы наивный split.
func DecodeTags(encoded string) []string {
	if encoded == "" {
		return []string{}
	}

	return strings.Split(encoded, tagDelimiter)
}
