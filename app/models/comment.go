package models

import "encoding/json"

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// UnmarshalJSON accepts both the structured comment shape and the legacy
// flat-string shape used by the oldest posts.json files. A bare string
// becomes a comment with no timestamp.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		return nil
	}

	type comment Comment
	var structured comment
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	*c = Comment(structured)
	return nil
}
