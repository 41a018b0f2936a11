package server

import "html/template"

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Kalilfin Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: .4rem; text-align: left; }
.error { color: #b91c1c; }
.Buy { color: #15803d; } .Sell { color: #b91c1c; } .Hold { color: #6b7280; }
</style>
</head>
<body>
<h1>Kalilfin</h1>
<form method="post" action="/">
  <input name="ticker" placeholder="Ticker, e.g. AAPL" required>
  <button type="submit">Add</button>
  <a href="/export">Export CSV</a>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<p><strong>Tip:</strong> {{.Tip}}</p>
{{if .Records}}
<table>
<tr><th>Ticker</th><th>Name</th><th>Price</th><th>Volume</th><th>Change %</th><th>SMA 20</th><th>RSI</th><th>Decision</th><th>Prediction</th><th>Eco</th><th></th></tr>
{{range .Records}}
<tr>
  <td>{{.Ticker}}</td>
  <td>{{.Name}}</td>
  <td>{{printf "%.2f" .Price}}</td>
  <td>{{.Volume}}</td>
  <td>{{printf "%.2f" .ChangePct}}</td>
  <td>{{printf "%.2f" .SMA20}}</td>
  <td>{{printf "%.2f" .RSI}}</td>
  <td class="{{.Decision}}">{{.Decision}}</td>
  <td>{{printf "%.2f" .Prediction}}</td>
  <td>{{.EcoScore.Score}} ({{.EcoScore.Carbon}} t CO2)</td>
  <td><a href="#" onclick="fetch('/remove/{{.Ticker}}').then(() => location.reload()); return false;">Remove</a></td>
</tr>
<tr><td colspan="11"><img src="/chart/{{.Ticker}}.png" alt="{{.Ticker}} chart" height="160"></td></tr>
{{end}}
</table>
<h2>News</h2>
{{range $ticker, $items := .News}}
<h3>{{$ticker}}</h3>
<ul>{{range $items}}<li><a href="{{.Link}}" target="_blank" rel="noopener">{{.Title}}</a></li>{{else}}<li>No news</li>{{end}}</ul>
{{end}}
{{else}}
<p>Your portfolio is empty.</p>
{{end}}
<footer><small>Updated {{.Timestamp}}</small></footer>
</body>
</html>
`))
