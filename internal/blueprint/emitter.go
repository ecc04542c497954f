package blueprint

import (
	"bytes"
	"encoding/json"
	"strings"
)

// EmitGameCode renders the self-contained playable prototype for a scene:
// one HTML payload bundling markup, styling and the game script. The scene
// config is embedded as JSON with angle brackets escaped, so the payload can
// itself be hosted inside a script-bearing context without closing it early.
// Layout randomness (pickup jitter, enemy spawns) derives entirely from
// scene.Seed: re-emitting the same scene reproduces the same game.
func EmitGameCode(scene SceneConfig) string {
	palette := scene.Palette
	if len(palette) < 3 {
		palette = defaultPalette
	}
	// The script indexes the palette directly, so the embedded config gets
	// the resolved triple as well.
	scene.Palette = palette

	replacer := strings.NewReplacer(
		"{{CONFIG}}", encodeSceneConfig(scene),
		"{{BG0}}", palette[0],
		"{{BG1}}", palette[1],
		"{{ACCENT}}", palette[2],
	)
	return replacer.Replace(gameTemplate)
}

// encodeSceneConfig marshals the scene with HTML-safe escaping: < > & become
// unicode escapes, so no "</script>" sequence can survive inside the payload.
// Nil slices are normalized to empty ones first — they would embed as JSON
// null and break the script's array accesses at init.
func encodeSceneConfig(scene SceneConfig) string {
	scene.Objectives = nonNilStrings(scene.Objectives)
	scene.Enemies = nonNilStrings(scene.Enemies)
	scene.Collectibles = nonNilStrings(scene.Collectibles)
	scene.Palette = nonNilStrings(scene.Palette)
	scene.Keywords = nonNilStrings(scene.Keywords)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(true)
	if err := encoder.Encode(scene); err != nil {
		// SceneConfig contains only strings and numbers; this cannot fire
		return "{}"
	}
	return strings.TrimSpace(buf.String())
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

const gameTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Prototype jouable</title>
<style>
  :root { --bg0: {{BG0}}; --bg1: {{BG1}}; --accent: {{ACCENT}}; }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    min-height: 100vh;
    background: radial-gradient(circle at 30% 20%, var(--bg1), var(--bg0) 65%);
    color: var(--accent);
    font-family: "Segoe UI", system-ui, sans-serif;
    display: flex; flex-direction: column; align-items: center; gap: 12px;
    padding: 18px;
  }
  header { text-align: center; max-width: 860px; }
  header h1 { font-size: 1.5rem; letter-spacing: 0.04em; }
  header p { opacity: 0.85; font-size: 0.9rem; margin-top: 4px; }
  .chips { display: flex; flex-wrap: wrap; gap: 8px; justify-content: center; max-width: 860px; }
  .chips span {
    border: 1px solid var(--accent); border-radius: 999px;
    padding: 4px 12px; font-size: 0.78rem; opacity: 0.9;
  }
  .stage { position: relative; }
  canvas {
    display: block; border-radius: 12px;
    border: 1px solid var(--accent);
    background: linear-gradient(160deg, var(--bg0), var(--bg1));
    box-shadow: 0 18px 60px rgba(0, 0, 0, 0.45);
  }
  .overlay {
    position: absolute; inset: 0; display: none;
    align-items: center; justify-content: center; text-align: center;
    background: rgba(0, 0, 0, 0.55); border-radius: 12px;
    font-size: 1.25rem; line-height: 1.6; padding: 24px;
  }
  .overlay.visible { display: flex; }
</style>
</head>
<body>
<header>
  <h1 id="title"></h1>
  <p id="subtitle"></p>
</header>
<div class="chips" id="objectives"></div>
<div class="stage">
  <canvas id="scene" width="900" height="560"></canvas>
  <div class="overlay" id="overlay"></div>
</div>
<script>
(function () {
  "use strict";
  var CONFIG = {{CONFIG}};

  var canvas = document.getElementById("scene");
  var ctx = canvas.getContext("2d");
  var W = canvas.width, H = canvas.height;

  document.getElementById("title").textContent = CONFIG.title;
  document.getElementById("subtitle").textContent = CONFIG.theme + " — " + CONFIG.environment;
  var chipHost = document.getElementById("objectives");
  CONFIG.objectives.forEach(function (objective, i) {
    var chip = document.createElement("span");
    chip.textContent = (i + 1) + ". " + objective;
    chipHost.appendChild(chip);
  });

  function mulberry32(a) {
    return function () {
      a |= 0; a = a + 0x6D2B79F5 | 0;
      var t = Math.imul(a ^ a >>> 15, 1 | a);
      t = t + Math.imul(t ^ t >>> 7, 61 | t) ^ t;
      return ((t ^ t >>> 14) >>> 0) / 4294967296;
    };
  }
  var rand = mulberry32(CONFIG.seed >>> 0);

  var STATE_PLAYING = "playing", STATE_VICTORY = "victory", STATE_GAMEOVER = "gameover";
  var state = STATE_PLAYING;
  var player = { x: W / 2, y: H - 70, r: 14, speed: 220 };
  var keys = {};

  var pickups = [];
  var total = CONFIG.collectibles.length;
  var cols = Math.max(1, Math.ceil(Math.sqrt(total)));
  var rows = Math.max(1, Math.ceil(total / cols));
  for (var i = 0; i < total; i++) {
    var gx = ((i % cols) + 0.5) / cols * (W - 140) + 70;
    var gy = (Math.floor(i / cols) + 0.5) / rows * (H - 240) + 90;
    pickups.push({
      x: gx + (rand() - 0.5) * 44,
      y: gy + (rand() - 0.5) * 44,
      r: 12,
      label: CONFIG.collectibles[i],
      collected: false
    });
  }

  var enemies = [];
  for (var j = 0; j < CONFIG.enemies.length; j++) {
    enemies.push({
      x: rand() < 0.5 ? 46 : W - 46,
      y: 60 + rand() * (H - 170),
      r: 15,
      speed: 80 + j * 18,
      phase: rand() * Math.PI * 2,
      label: CONFIG.enemies[j]
    });
  }

  window.addEventListener("keydown", function (e) {
    keys[e.code] = true;
    if (state === STATE_GAMEOVER && e.code === "KeyR") location.reload();
  });
  window.addEventListener("keyup", function (e) { keys[e.code] = false; });

  function inputAxis() {
    var dx = 0, dy = 0;
    if (keys.ArrowLeft || keys.KeyA || keys.KeyQ) dx -= 1;
    if (keys.ArrowRight || keys.KeyD) dx += 1;
    if (keys.ArrowUp || keys.KeyW || keys.KeyZ) dy -= 1;
    if (keys.ArrowDown || keys.KeyS) dy += 1;
    var len = Math.hypot(dx, dy);
    if (len > 0) { dx /= len; dy /= len; }
    return { x: dx, y: dy };
  }

  function clamp(value, lo, hi) { return Math.min(hi, Math.max(lo, value)); }

  function collectedCount() {
    var n = 0;
    pickups.forEach(function (p) { if (p.collected) n++; });
    return n;
  }

  function update(dt, t) {
    if (state === STATE_PLAYING) {
      var axis = inputAxis();
      player.x = clamp(player.x + axis.x * player.speed * dt, player.r, W - player.r);
      player.y = clamp(player.y + axis.y * player.speed * dt, player.r, H - player.r);

      pickups.forEach(function (p) {
        if (!p.collected && Math.hypot(player.x - p.x, player.y - p.y) < player.r + p.r) {
          p.collected = true;
        }
      });
      if (collectedCount() === total) {
        state = STATE_VICTORY;
        showOverlay("Victoire ! Tous les objets sont réunis.");
      }
    }

    enemies.forEach(function (enemy) {
      var dx = player.x - enemy.x, dy = player.y - enemy.y;
      var dist = Math.hypot(dx, dy) || 1;
      var ux = dx / dist, uy = dy / dist;
      var pursuit = state === STATE_VICTORY ? -0.4 : 1;
      var sway = Math.sin(t * 0.002 + enemy.phase) * 36;
      enemy.x = clamp(enemy.x + (ux * enemy.speed * pursuit - uy * sway) * dt, enemy.r, W - enemy.r);
      enemy.y = clamp(enemy.y + (uy * enemy.speed * pursuit + ux * sway) * dt, enemy.r, H - enemy.r);

      if (state === STATE_PLAYING && dist < player.r + enemy.r) {
        state = STATE_GAMEOVER;
        showOverlay("Game over — appuyez sur R pour recommencer.");
      }
    });
  }

  function showOverlay(message) {
    var overlay = document.getElementById("overlay");
    overlay.textContent = message;
    overlay.classList.add("visible");
  }

  function drawNebulas(t) {
    CONFIG.keywords.forEach(function (keyword, idx) {
      var angle = t * 0.00012 * (1 + idx * 0.13) + idx * (Math.PI * 2 / Math.max(1, CONFIG.keywords.length));
      var radius = 150 + (idx % 4) * 48;
      var x = W / 2 + Math.cos(angle) * radius;
      var y = H / 2 + Math.sin(angle) * radius * 0.6;
      ctx.globalAlpha = 0.16;
      ctx.fillStyle = CONFIG.palette[idx % CONFIG.palette.length];
      ctx.beginPath();
      ctx.arc(x, y, 34 + (idx % 3) * 12, 0, Math.PI * 2);
      ctx.fill();
      ctx.globalAlpha = 0.45;
      ctx.fillStyle = CONFIG.palette[2];
      ctx.font = "11px sans-serif";
      ctx.textAlign = "center";
      ctx.fillText(keyword, x, y + 3);
      ctx.globalAlpha = 1;
    });
  }

  function draw(t) {
    ctx.clearRect(0, 0, W, H);
    drawNebulas(t);

    pickups.forEach(function (p) {
      var pulse = 1 + Math.sin(t * 0.005 + p.x) * 0.15;
      ctx.save();
      ctx.translate(p.x, p.y);
      ctx.rotate(t * 0.002);
      ctx.globalAlpha = p.collected ? 0.18 : 1;
      ctx.fillStyle = CONFIG.palette[2];
      ctx.fillRect(-p.r * pulse, -p.r * pulse, p.r * 2 * pulse, p.r * 2 * pulse);
      ctx.restore();
      ctx.globalAlpha = p.collected ? 0.25 : 0.85;
      ctx.fillStyle = "#ffffff";
      ctx.font = "10px sans-serif";
      ctx.textAlign = "center";
      ctx.fillText(p.label, p.x, p.y + p.r + 14);
      ctx.globalAlpha = 1;
    });

    enemies.forEach(function (enemy) {
      ctx.fillStyle = "#ff5470";
      ctx.beginPath();
      ctx.arc(enemy.x, enemy.y, enemy.r, 0, Math.PI * 2);
      ctx.fill();
      ctx.fillStyle = "#ffd3dc";
      ctx.font = "10px sans-serif";
      ctx.textAlign = "center";
      ctx.fillText(enemy.label, enemy.x, enemy.y - enemy.r - 6);
    });

    ctx.fillStyle = CONFIG.palette[1];
    ctx.strokeStyle = CONFIG.palette[2];
    ctx.lineWidth = 2;
    ctx.beginPath();
    ctx.arc(player.x, player.y, player.r, 0, Math.PI * 2);
    ctx.fill();
    ctx.stroke();

    var env = CONFIG.environment.length > 60
      ? CONFIG.environment.slice(0, 57) + "..."
      : CONFIG.environment;
    ctx.fillStyle = "#ffffff";
    ctx.font = "13px sans-serif";
    ctx.textAlign = "left";
    ctx.fillText("Objets : " + collectedCount() + " / " + total +
      "   Menaces : " + enemies.length + "   " + env, 16, H - 16);
  }

  var last = null;
  function frame(ts) {
    if (last === null) last = ts;
    var dt = Math.min((ts - last) / 1000, 0.05);
    last = ts;
    update(dt, ts);
    draw(ts);
    requestAnimationFrame(frame);
  }
  requestAnimationFrame(frame);
})();
</script>
</body>
</html>
`
