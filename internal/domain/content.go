package domain

// BlogContent is the flattened plain text of a blog article.
type BlogContent string

// String returns the content text.
func (c BlogContent) String() string {
	return string(c)
}

// Excerpt returns at most n characters of the content.
func (c BlogContent) Excerpt(n int) string {
	return Truncate(string(c), n)
}

// Truncate returns the first n characters (runes) of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
