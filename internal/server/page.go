package server

// indexPage is the self-contained web stage: it subscribes to /events and
// swaps each stage's SVG in place, with a small control strip wired to the
// JSON endpoints.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>bop</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
         margin: 0; background: #0b0e14; color: #c7cdd9; }
  header { display: flex; align-items: baseline; gap: 1rem; padding: 0.8rem 1.2rem; }
  h1 { font-size: 1.1rem; margin: 0; color: #8ab4f8; letter-spacing: 0.08em; }
  #pose { font-size: 0.85rem; opacity: 0.7; }
  #stages { display: flex; flex-wrap: wrap; gap: 1rem; padding: 0 1.2rem; }
  #stages svg { border-radius: 8px; box-shadow: 0 2px 12px rgba(0,0,0,0.5); }
  .controls { display: flex; flex-wrap: wrap; align-items: center; gap: 0.5rem;
              padding: 1rem 1.2rem; }
  button { background: #222839; color: #c7cdd9; border: 1px solid #343b52;
           border-radius: 6px; padding: 0.4rem 0.9rem; cursor: pointer; }
  button:hover { border-color: #8ab4f8; }
  label { font-size: 0.85rem; }
  input[type=range] { vertical-align: middle; }
</style>
</head>
<body>
<header>
  <h1>bop</h1>
  <span id="pose"></span>
  <span id="bpm-now"></span>
</header>
<div id="stages"></div>
<div class="controls">
  <button data-action="start">start</button>
  <button data-action="stop">stop</button>
  <button data-action="still">still</button>
  <button data-action="reset">reset</button>
  <button data-action="drift-start">drift</button>
  <button data-action="drift-stop">home</button>
  <button data-action="auto-start">auto</button>
  <button data-action="auto-stop">manual</button>
  <button data-action="refresh-artwork">artwork</button>
  <button id="add-stage">add stage</button>
  <label>bpm <input id="bpm" type="range" min="60" max="180" value="120"></label>
</div>
<script>
  var stages = document.getElementById('stages');
  var es = new EventSource('/events');
  es.addEventListener('frame', function (e) {
    var f = JSON.parse(e.data);
    Object.keys(f.stages).forEach(function (id) {
      var el = document.getElementById('stage-' + id);
      if (!el) {
        el = document.createElement('div');
        el.id = 'stage-' + id;
        stages.appendChild(el);
      }
      el.innerHTML = f.stages[id];
    });
    Array.prototype.forEach.call(stages.children, function (el) {
      var id = el.id.slice('stage-'.length);
      if (!(id in f.stages)) { el.remove(); }
    });
    document.getElementById('pose').textContent = f.pose;
    document.getElementById('bpm-now').textContent = Math.round(f.bpm) + ' bpm';
  });

  function post(path, body) {
    return fetch(path, { method: 'POST', body: JSON.stringify(body) });
  }

  Array.prototype.forEach.call(document.querySelectorAll('button[data-action]'), function (btn) {
    btn.addEventListener('click', function () {
      post('/api/control', { action: btn.dataset.action });
    });
  });
  document.getElementById('add-stage').addEventListener('click', function () {
    post('/api/stages', { scale: 0.7 });
  });
  document.getElementById('bpm').addEventListener('input', function (e) {
    post('/api/bpm', { bpm: Number(e.target.value) });
  });
</script>
</body>
</html>
`
