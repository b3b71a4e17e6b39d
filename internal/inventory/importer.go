package inventory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// recordFields is the column count of a seed record:
// id,name,category,quantity,unit_price,received_at.
const recordFields = 6

// ParseItems reads comma-separated item records, one per line. Blank lines
// and lines starting with '#' are skipped. The first malformed record (bad
// id token, negative quantity, unparsable price or date) fails the whole
// batch with a line-numbered error; no partial result is returned.
func ParseItems(r io.Reader) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		item, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return items, nil
}

func parseRecord(text string) (Item, error) {
	fields := strings.Split(text, ",")
	if len(fields) != recordFields {
		return Item{}, fmt.Errorf("expected %d fields, got %d", recordFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Item{}, fmt.Errorf("invalid id token %q: %w", fields[0], err)
	}
	quantity, err := strconv.Atoi(fields[3])
	if err != nil {
		return Item{}, fmt.Errorf("invalid quantity token %q: %w", fields[3], err)
	}
	price, err := PriceFromString(fields[4])
	if err != nil {
		return Item{}, err
	}
	received, err := ParseDate(fields[5])
	if err != nil {
		return Item{}, err
	}

	return NewItem(id, fields[1], fields[2], quantity, price, received)
}
