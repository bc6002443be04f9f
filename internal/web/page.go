package web

import (
	"net/http"

	"github.com/labstack/echo/v5"
)

func (s *Server) indexPage(c *echo.Context) error {
	return c.HTML(http.StatusOK, indexHTML)
}

// indexHTML is the whole chat UI: role selector, question box, latest-answer
// panel and a compact history column with expandable full answers.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Role-based Creative Chatbot</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; gap: 1rem; }
#main { flex: 2; padding: 1rem; }
#history { flex: 1; padding: 1rem; background: #fafafa; min-height: 100vh; }
select, textarea, button { font-size: 0.95rem; }
textarea { width: 100%; height: 120px; margin: 0.5rem 0; }
.chat-container { display: flex; margin-bottom: 0.5rem; }
.chat-bubble { padding: 0.6rem 0.9rem; border-radius: 12px; max-width: 100%; word-wrap: break-word; font-size: 0.95rem; }
.chat-user { justify-content: flex-end; }
.chat-user .chat-bubble { background-color: #DCF8C6; border-bottom-right-radius: 2px; }
.chat-bot { justify-content: flex-start; }
.chat-bot .chat-bubble { background-color: #F1F0F0; border-bottom-left-radius: 2px; }
.chat-role-header { font-size: 0.8rem; color: #555; margin-bottom: 0.15rem; font-weight: 600; }
.chat-banner { font-family: "Courier New", monospace; font-size: 0.7rem; white-space: pre; margin-bottom: 0.25rem; color: #444; }
.chat-avatar { font-size: 1.7rem; margin-right: 0.6rem; }
.chat-image { max-width: 256px; border-radius: 8px; margin-top: 0.4rem; display: block; }
.role-desc { color: #555; font-size: 0.9rem; }
.warning { color: #a60; }
.error { color: #c00; }
details { margin-bottom: 0.75rem; }
</style>
</head>
<body>
<div id="main">
  <h1>🎭 Talk with Chatbot</h1>
  <p>Select a creative role and ask your question below.</p>
  <select id="role"></select>
  <p class="role-desc" id="roleDesc"></p>
  <textarea id="input"></textarea><br>
  <button id="send">Generate Response</button>
  <button id="clear">Clear history</button>
  <p id="status"></p>
  <div id="latest"></div>
</div>
<div id="history"><h3>History</h3><div id="bubbles"></div></div>
<script>
let rolesByName = {};
let sessionUID = null;

function el(tag, cls, text) {
  const n = document.createElement(tag);
  if (cls) n.className = cls;
  if (text !== undefined) n.textContent = text;
  return n;
}

function botBubble(msg, full) {
  const wrap = el("div", "chat-container chat-bot");
  const bubble = el("div", "chat-bubble");
  if (msg.avatar) {
    const av = el("span", "chat-avatar");
    av.innerHTML = msg.avatar;
    bubble.appendChild(av);
  }
  bubble.appendChild(el("div", "chat-role-header", msg.roleName));
  if (msg.banner) bubble.appendChild(el("div", "chat-banner", msg.banner));
  if (full) {
    bubble.appendChild(el("div", "", msg.text));
    if (msg.imageUrl) {
      const img = el("img", "chat-image");
      img.src = msg.imageUrl;
      bubble.appendChild(img);
    }
  }
  wrap.appendChild(bubble);
  return wrap;
}

async function loadRoles() {
  const resp = await fetch("/api/v1/roles");
  const roles = await resp.json();
  const sel = document.getElementById("role");
  for (const r of roles) {
    rolesByName[r.name] = r;
    const opt = el("option", "", r.name);
    opt.value = r.name;
    sel.appendChild(opt);
  }
  sel.onchange = syncRole;
  syncRole();
}

function syncRole() {
  const r = rolesByName[document.getElementById("role").value];
  document.getElementById("roleDesc").textContent = r.description;
  document.getElementById("input").value = "e.g., " + r.example;
}

async function ensureSession() {
  if (sessionUID) return;
  const resp = await fetch("/api/v1/sessions", { method: "POST" });
  sessionUID = (await resp.json()).uid;
}

async function refreshHistory() {
  if (!sessionUID) return;
  const resp = await fetch("/api/v1/sessions/" + sessionUID + "/messages");
  const msgs = await resp.json();
  const box = document.getElementById("bubbles");
  box.innerHTML = "";
  for (const m of msgs) {
    if (m.speaker === "user") {
      const wrap = el("div", "chat-container chat-user");
      wrap.appendChild(el("div", "chat-bubble", m.text));
      box.appendChild(wrap);
    } else {
      box.appendChild(botBubble(m, false));
      const d = el("details");
      d.appendChild(el("summary", "", "Show full answer"));
      d.appendChild(el("div", "", m.text));
      box.appendChild(d);
    }
  }
}

async function send() {
  const status = document.getElementById("status");
  status.textContent = "Thinking as " + document.getElementById("role").value + "...";
  status.className = "";
  await ensureSession();
  const resp = await fetch("/api/v1/sessions/" + sessionUID + "/chat", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({
      role: document.getElementById("role").value,
      content: document.getElementById("input").value,
    }),
  });
  if (!resp.ok) {
    const body = await resp.json().catch(() => ({}));
    status.textContent = body.message || "request failed";
    status.className = "error";
    return;
  }
  const turn = await resp.json();
  status.textContent = turn.warning || "";
  status.className = turn.warning ? "warning" : "";
  const latest = document.getElementById("latest");
  latest.innerHTML = "<h3>💡 Latest response</h3>";
  const msgs = await (await fetch("/api/v1/sessions/" + sessionUID + "/messages")).json();
  latest.appendChild(botBubble(msgs[msgs.length - 1], true));
  refreshHistory();
}

async function clearHistory() {
  if (!sessionUID) return;
  await fetch("/api/v1/sessions/" + sessionUID + "/messages", { method: "DELETE" });
  document.getElementById("latest").innerHTML = "";
  refreshHistory();
}

document.getElementById("send").onclick = send;
document.getElementById("clear").onclick = clearHistory;
loadRoles();
</script>
</body>
</html>
`
