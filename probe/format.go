package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// projectField extracts a single top-level field from a JSON object and
// renders it: strings unquoted, everything else as compact JSON.
func projectField(raw json.RawMessage, field string) (string, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return "", err
	}
	value, ok := object[field]
	if !ok {
		return "", fmt.Errorf("field %q not found in response", field)
	}
	return renderValue(value), nil
}

// dropField removes a top-level field from a JSON object.
func dropField(raw json.RawMessage, field string) (json.RawMessage, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return nil, err
	}
	delete(object, field)
	return json.Marshal(object)
}

func indentJSON(raw json.RawMessage) (string, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

// renderTable renders the top-level fields of a JSON object as a two-column
// table, with composite values summarised.
func renderTable(raw json.RawMessage) (string, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return "", err
	}
	fields := make([]string, 0, len(object))
	for field := range object {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out bytes.Buffer
	table := tablewriter.NewWriter(&out)
	table.SetHeader([]string{"Field", "Value"})
	for _, field := range fields {
		table.Append([]string{field, summariseValue(object[field])})
	}
	table.Render()
	return out.String(), nil
}

func renderValue(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	return string(value)
}

func summariseValue(value json.RawMessage) string {
	var array []json.RawMessage
	if err := json.Unmarshal(value, &array); err == nil {
		return strconv.Itoa(len(array)) + " items"
	}
	return renderValue(value)
}
