package moderation

import (
	"bufio"
	"bytes"
	"io/fs"
	"nearby-chat/errors"
	"path"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Dictionary is the merged content of every word list found in a directory.
type Dictionary struct {
	Words     []string
	Languages []string
}

// LoadDictionaries reads every .txt file at the root of fsys, one word per
// line, and merges them. The file name is the language ("fr.txt" -> "fr").
func LoadDictionaries(fsys fs.FS) (*Dictionary, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var languages []string
	uniqueWords := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, err
		}

		// Scanner copes with both \n and \r\n line endings
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" && !strings.HasPrefix(line, "#") {
				uniqueWords[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(uniqueWords) == 0 {
		return nil, errors.ErrEmptyWords
	}

	words := lo.Keys(uniqueWords)
	sort.Strings(words)
	return &Dictionary{Words: words, Languages: languages}, nil
}
