package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleIndex serves the dashboard page. The page is a thin view over the
// /api/v1 endpoints; all state lives server-side in the session.
// GET /
func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="no">
<head>
<meta charset="utf-8">
<title>NVE Vannføring</title>
<style>
  body { font-family: Arial, sans-serif; margin: 20px; max-width: 960px; }
  #gate, #main { margin-top: 1em; }
  #stations li { cursor: pointer; padding: 2px 4px; }
  #stations li:hover { background: #eef; }
  #error { color: #b00; }
  #stats span { margin-right: 1.5em; }
  img { max-width: 100%; border: 1px solid #ccc; }
</style>
</head>
<body>
<h1>NVE Vannføring</h1>
<p id="error"></p>
<p id="loading" hidden>Laster…</p>

<div id="gate">
  <label>API-nøkkel: <input id="apikey" type="password" size="40"></label>
  <button onclick="setCredential()">Logg inn</button>
</div>

<div id="main" hidden>
  <p>
    <input id="search" placeholder="Søk stasjon, elv eller nummer" size="32" oninput="listStations()">
    <select id="parameter"></select>
    <input id="start" type="date"> – <input id="end" type="date">
  </p>
  <ul id="stations"></ul>
  <div id="result" hidden>
    <p id="stats">
      <span>Antall: <b id="st-count"></b></span>
      <span>Min: <b id="st-min"></b></span>
      <span>Maks: <b id="st-max"></b></span>
      <span>Snitt: <b id="st-avg"></b></span>
      <a id="export" href="/api/v1/export">Last ned CSV</a>
    </p>
    <img id="chart" alt="">
  </div>
</div>

<script>
async function call(url, opts) {
  document.getElementById('loading').hidden = false;
  document.getElementById('error').textContent = '';
  try {
    const resp = await fetch(url, opts);
    const body = await resp.json();
    if (!resp.ok) throw new Error(body.error || resp.statusText);
    return body;
  } catch (err) {
    document.getElementById('error').textContent = err.message;
    throw err;
  } finally {
    document.getElementById('loading').hidden = true;
  }
}

async function setCredential() {
  const apiKey = document.getElementById('apikey').value;
  await call('/api/v1/session/credential', {
    method: 'PUT',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({apiKey})
  });
  document.getElementById('gate').hidden = true;
  document.getElementById('main').hidden = false;
  await listStations();
}

async function listStations() {
  const q = encodeURIComponent(document.getElementById('search').value);
  const body = await call('/api/v1/stations?q=' + q);
  const list = document.getElementById('stations');
  list.innerHTML = '';
  for (const st of body.data) {
    const li = document.createElement('li');
    li.textContent = st.stationName + (st.riverName ? ' – ' + st.riverName : '') + ' (' + st.stationId + ')';
    li.onclick = () => fetchObservations(st.stationId);
    list.appendChild(li);
  }
}

async function fetchObservations(stationId) {
  const body = await call('/api/v1/observations', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({
      stationId,
      parameter: parseInt(document.getElementById('parameter').value, 10),
      start: document.getElementById('start').value,
      end: document.getElementById('end').value
    })
  });
  const stats = body.data.stats;
  const result = document.getElementById('result');
  result.hidden = !stats || stats.count === 0;
  if (stats && stats.count > 0) {
    document.getElementById('st-count').textContent = stats.count;
    document.getElementById('st-min').textContent = stats.min.toFixed(2);
    document.getElementById('st-max').textContent = stats.max.toFixed(2);
    document.getElementById('st-avg').textContent = stats.avg.toFixed(2);
    document.getElementById('chart').src = '/api/v1/chart.png?ts=' + Date.now();
  }
}

async function init() {
  const snap = (await call('/api/v1/session')).data;
  document.getElementById('start').value = snap.start.slice(0, 10);
  document.getElementById('end').value = snap.end.slice(0, 10);

  const params = (await call('/api/v1/parameters')).data;
  const sel = document.getElementById('parameter');
  for (const p of params) {
    const opt = document.createElement('option');
    opt.value = p.code;
    opt.textContent = p.name + ' (' + p.unit + ')';
    if (p.code === snap.parameter) opt.selected = true;
    sel.appendChild(opt);
  }

  if (!snap.gated) {
    document.getElementById('gate').hidden = true;
    document.getElementById('main').hidden = false;
    await listStations();
  }
}
init();
</script>
</body>
</html>
`
