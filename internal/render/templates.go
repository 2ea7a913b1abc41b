package render

const layoutTemplate = `{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Title}}{{.Title}} | {{end}}{{.SiteName}}</title>
  <link rel="stylesheet" href="{{.Links.Asset "style.css"}}">
</head>
<body>
  <header>
    <a class="site-name" href="{{.Links.Home}}">{{.SiteName}}</a>
    {{- if .TagPanel}}
    <button id="tagPanelToggle" type="button">Tags</button>
    {{- end}}
    {{- if .Links.Search}}
    <form action="{{.Links.Search}}" method="get">
      <input type="search" name="q" value="{{.Query}}" placeholder="Search comics, tags, playlists">
      <button type="submit">Search</button>
    </form>
    {{- end}}
  </header>
{{end}}

{{define "footer"}}
  <script src="{{.Links.Asset "main.js"}}"></script>
</body>
</html>
{{end}}

{{define "images"}}{{range .}}<img src="{{.Src}}" alt="{{.Alt}}" class="comic-image">{{end}}{{end}}
`

const homeTemplate = `{{define "home"}}{{template "header" .}}
  <aside id="tagPanel">
    <ul id="tagList">
      {{- range .Tags}}
      <li><a href="{{.Href}}">{{.Label}}</a></li>
      {{- end}}
    </ul>
  </aside>
  <main id="mainContent">
    <section id="playlistsContainer">
      {{- range .Playlists}}
      <div class="playlist-item">
        <h3><a href="{{.Href}}">{{.Title}}</a></h3>
        <div class="preview">{{template "images" .Images}}</div>
      </div>
      {{- else}}
      <p class="message">No playlists yet.</p>
      {{- end}}
    </section>
    <section id="randomTagsContainer">
      {{- range .TagGroups}}
      <div class="random-tag-group">
        <h4><a href="{{.Href}}">{{.Title}}</a></h4>
        <div class="preview">{{template "images" .Images}}</div>
      </div>
      {{- end}}
    </section>
  </main>
{{template "footer" .}}{{end}}
`

const comicsTemplate = `{{define "comics"}}{{template "header" .}}
  <main id="mainContent">
    <div id="comicContent">
      {{- if .Message}}
      <p class="message">{{.Message}}</p>
      {{- else}}
      <h2>{{.Heading}}</h2>
      {{- range .Items}}
      <div class="comic-item">
        {{- if .Title}}
        <h3>{{if .Href}}<a href="{{.Href}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
        {{- end}}
        {{template "images" .Images}}
      </div>
      {{- end}}
      {{- end}}
    </div>
  </main>
{{template "footer" .}}{{end}}
`

const tagTemplate = `{{define "tag"}}{{template "header" .}}
  <main id="mainContent">
    <div id="tagContent">
      {{- if .Message}}
      <p class="message">{{.Message}}</p>
      {{- else}}
      <h2>{{.Heading}}</h2>
      {{- range .Items}}
      <div class="comic-item">
        <h3><a href="{{.Href}}">{{.Title}}</a></h3>
        {{template "images" .Images}}
      </div>
      {{- end}}
      {{- end}}
    </div>
  </main>
{{template "footer" .}}{{end}}
`

const searchTemplate = `{{define "search"}}{{template "header" .}}
  <main id="mainContent">
    <form class="search-form" action="{{.Links.Search}}" method="get">
      <input type="search" name="q" value="{{.Query}}">
      <select name="type">
        {{- range .Kinds}}
        <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
        {{- end}}
      </select>
      <button type="submit">Search</button>
    </form>
    <p class="message">{{.Message}}</p>
    {{- range .Playlists}}
    <div class="search-hit playlist-item">
      <h3>Playlist: <a href="{{.Href}}">{{.Title}}</a></h3>
      <div class="preview">{{template "images" .Images}}</div>
    </div>
    {{- end}}
    {{- range .Hits}}
    <div class="search-hit comic-item">
      <h3><a href="{{.Href}}">{{.Title}}</a>{{if .Playlist}} in <a href="{{.PlaylistHref}}">{{.Playlist}}</a>{{end}}</h3>
      <div class="preview">{{template "images" .Images}}</div>
    </div>
    {{- end}}
  </main>
{{template "footer" .}}{{end}}
`

const errorTemplate = `{{define "error"}}{{template "header" .}}
  <main id="mainContent">
    <p>{{.Message}}</p>
  </main>
{{template "footer" .}}{{end}}
`
