package server

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
)

type dashboardRow struct {
	Symbol string
	Price  string
	Daily  string
	Hourly string
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<title>CrossWatch</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; min-width: 40em; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
.golden_cross { color: #1a7f37; font-weight: bold; }
.death_cross { color: #cf222e; font-weight: bold; }
.insufficient_data { color: #888; }
form { display: inline; }
</style>
</head>
<body>
<h1>CrossWatch</h1>
<form method="post" action="/add_stock">
  <input name="symbol" placeholder="e.g. RELIANCE.NS" required>
  <button type="submit">Add</button>
</form>
<table>
<tr><th>Symbol</th><th>Price</th><th>Daily</th><th>Hourly</th><th></th></tr>
{{range .}}
<tr>
  <td>{{.Symbol}}</td>
  <td>{{.Price}}</td>
  <td class="{{.Daily}}">{{.Daily}}</td>
  <td class="{{.Hourly}}">{{.Hourly}}</td>
  <td><form method="post" action="/remove_stock"><input type="hidden" name="symbol" value="{{.Symbol}}"><button type="submit">Remove</button></form></td>
</tr>
{{else}}
<tr><td colspan="5">Watchlist is empty — add a symbol above.</td></tr>
{{end}}
</table>
<p><a href="/api">API</a></p>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	symbols := s.Watchlist.List()
	rows := make([]dashboardRow, 0, len(symbols))
	for _, sym := range symbols {
		snap := s.Collector.Snapshot(sym)
		row := dashboardRow{
			Symbol: snap.Symbol,
			Price:  "N/A",
			Daily:  snap.Daily.Signal.String(),
			Hourly: snap.Hourly.Signal.String(),
		}
		if snap.Price != nil {
			row.Price = fmt.Sprintf("%.2f", *snap.Price)
		}
		rows = append(rows, row)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, rows); err != nil {
		log.Printf("[ERROR] render dashboard: %v", err)
	}
}
