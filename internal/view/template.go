package view

const feedTemplate = `
=== Feed ===

{{- if eq (len .) 0 }}
No posts cached yet.

Use 'feedsync sync' to fetch the feed, or 'feedsync create' to post.
{{ else }}
{{len .}} post(s):

{{- range . }}
- {{ .ID }}{{ if .AuthorID }} by {{ .AuthorID }}{{ end }}
   {{ .Content }}
   Likes: {{ .Likes }}{{ if .LikedByViewer }} (liked){{ end }}   Comments: {{ .Comments }}
   {{- range .CommentTexts }}
     > {{ . }}
   {{- end }}

{{- end }}
{{- end }}
`
