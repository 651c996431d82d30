// Package web provides embedded dashboard HTML/CSS/JS
package web

import "github.com/gofiber/fiber/v2"

// handleDashboard serves the main dashboard HTML
func (s *Server) handleDashboard(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(dashboardHTML)
}

// handleDashboardJS serves the dashboard JavaScript
func (s *Server) handleDashboardJS(c *fiber.Ctx) error {
	c.Set("Content-Type", "application/javascript; charset=utf-8")
	return c.SendString(dashboardJS)
}

// handleDashboardCSS serves the dashboard CSS
func (s *Server) handleDashboardCSS(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/css; charset=utf-8")
	return c.SendString(dashboardCSS)
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>lshkit dashboard</title>
    <link rel="stylesheet" href="/dashboard.css">
    <link href="https://fonts.googleapis.com/css2?family=JetBrains+Mono:wght@400;500;700&family=Inter:wght@400;500;600;700&display=swap" rel="stylesheet">
</head>
<body>
    <div class="app">
        <main class="main">
            <header class="header">
                <h1 class="page-title">lshkit</h1>
                <div class="header-actions">
                    <span class="status-indicator running" id="status-indicator">
                        <span class="status-dot"></span>
                        <span class="status-text">connected</span>
                    </span>
                </div>
            </header>

            <div class="content">
                <section class="control-panel glass-card">
                    <h2 class="section-title">Insert / query</h2>
                    <div class="control-form">
                        <div class="form-group">
                            <label for="doc-content">Document content</label>
                            <textarea id="doc-content" rows="6" placeholder="paste a document or read to compare against the index" class="input"></textarea>
                        </div>
                        <div class="button-group">
                            <button class="btn btn-primary" id="insert-btn">Insert into index</button>
                            <button class="btn btn-small" id="query-btn">Query (no insert)</button>
                        </div>
                    </div>
                </section>

                <section class="stats-grid">
                    <div class="stat-card glass-card">
                        <div class="stat-content">
                            <span class="stat-value" id="documents-indexed">0</span>
                            <span class="stat-label">Documents indexed</span>
                        </div>
                    </div>
                    <div class="stat-card glass-card pair-card">
                        <div class="stat-content">
                            <span class="stat-value" id="pairs-found">0</span>
                            <span class="stat-label">Neighbor pairs found</span>
                        </div>
                    </div>
                    <div class="stat-card glass-card">
                        <div class="stat-content">
                            <span class="stat-value" id="bands-rows">-/-</span>
                            <span class="stat-label">Bands / rows</span>
                        </div>
                    </div>
                    <div class="stat-card glass-card">
                        <div class="stat-content">
                            <span class="stat-value" id="n-samples">0</span>
                            <span class="stat-label">Sketch width (N)</span>
                        </div>
                    </div>
                    <div class="stat-card glass-card">
                        <div class="stat-content">
                            <span class="stat-value" id="threshold">0</span>
                            <span class="stat-label">Similarity threshold</span>
                        </div>
                    </div>
                    <div class="stat-card glass-card">
                        <div class="stat-content">
                            <span class="stat-value" id="elapsed-time">0s</span>
                            <span class="stat-label">Elapsed time</span>
                        </div>
                    </div>
                </section>

                <section class="live-feed glass-card">
                    <div class="section-header">
                        <h2 class="section-title">Live neighbor feed</h2>
                        <button class="btn btn-small" id="clear-logs">Clear</button>
                    </div>
                    <div class="log-container" id="log-container">
                        <div class="log-placeholder">
                            <span class="placeholder-text">Waiting for inserts...</span>
                        </div>
                    </div>
                </section>

                <section class="current-query glass-card">
                    <h2 class="section-title">Last result</h2>
                    <code class="query-display" id="last-result">-</code>
                </section>
            </div>
        </main>
    </div>

    <script src="/dashboard.js"></script>
</body>
</html>`

const dashboardCSS = `:root {
    --bg-primary: #0a0a0f;
    --bg-secondary: #12121a;
    --bg-tertiary: #1a1a24;
    --text-primary: #ffffff;
    --text-secondary: #a0a0b0;
    --text-muted: #606070;
    --accent-primary: #00d4ff;
    --accent-secondary: #7c3aed;
    --accent-success: #10b981;
    --accent-warning: #f59e0b;
    --accent-danger: #ef4444;
    --border-color: rgba(255, 255, 255, 0.08);
    --glass-bg: rgba(255, 255, 255, 0.03);
    --glass-border: rgba(255, 255, 255, 0.08);
    --shadow: 0 8px 32px rgba(0, 0, 0, 0.4);
    --radius: 12px;
    --font-mono: 'JetBrains Mono', monospace;
    --font-sans: 'Inter', -apple-system, BlinkMacSystemFont, sans-serif;
}

* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: var(--font-sans);
    background: var(--bg-primary);
    color: var(--text-primary);
    min-height: 100vh;
    overflow-x: hidden;
}

body::before {
    content: '';
    position: fixed;
    top: 0;
    left: 0;
    right: 0;
    bottom: 0;
    background:
        radial-gradient(circle at 20% 80%, rgba(0, 212, 255, 0.08) 0%, transparent 50%),
        radial-gradient(circle at 80% 20%, rgba(124, 58, 237, 0.08) 0%, transparent 50%),
        radial-gradient(circle at 40% 40%, rgba(16, 185, 129, 0.04) 0%, transparent 40%);
    pointer-events: none;
    z-index: -1;
}

.app {
    display: flex;
    min-height: 100vh;
}

.main {
    flex: 1;
    min-height: 100vh;
}

.header {
    padding: 24px 32px;
    display: flex;
    justify-content: space-between;
    align-items: center;
    border-bottom: 1px solid var(--border-color);
    background: rgba(10, 10, 15, 0.8);
    backdrop-filter: blur(10px);
    position: sticky;
    top: 0;
    z-index: 50;
}

.page-title {
    font-size: 24px;
    font-weight: 600;
}

.status-indicator {
    display: flex;
    align-items: center;
    gap: 8px;
    padding: 8px 16px;
    border-radius: 20px;
    background: var(--glass-bg);
    border: 1px solid var(--glass-border);
}

.status-dot {
    width: 8px;
    height: 8px;
    border-radius: 50%;
    background: var(--text-muted);
}

.status-indicator.running .status-dot {
    background: var(--accent-success);
    animation: pulse 1.5s infinite;
}

@keyframes pulse {
    0%, 100% { opacity: 1; transform: scale(1); }
    50% { opacity: 0.5; transform: scale(1.2); }
}

.status-text {
    font-size: 13px;
    font-weight: 500;
    color: var(--text-secondary);
}

.content {
    padding: 24px 32px;
}

.glass-card {
    background: var(--glass-bg);
    border: 1px solid var(--glass-border);
    border-radius: var(--radius);
    padding: 24px;
    backdrop-filter: blur(10px);
    margin-bottom: 24px;
}

.section-title {
    font-size: 16px;
    font-weight: 600;
    margin-bottom: 20px;
    color: var(--text-primary);
}

.section-header {
    display: flex;
    justify-content: space-between;
    align-items: center;
    margin-bottom: 16px;
}

.section-header .section-title {
    margin-bottom: 0;
}

.control-form {
    display: flex;
    flex-direction: column;
    gap: 20px;
}

.form-group {
    display: flex;
    flex-direction: column;
    gap: 8px;
}

.form-group label {
    font-size: 13px;
    font-weight: 500;
    color: var(--text-secondary);
}

.input {
    padding: 12px 16px;
    background: var(--bg-tertiary);
    border: 1px solid var(--border-color);
    border-radius: 8px;
    color: var(--text-primary);
    font-size: 14px;
    font-family: var(--font-mono);
    transition: all 0.2s ease;
    resize: vertical;
}

.input:focus {
    outline: none;
    border-color: var(--accent-primary);
    box-shadow: 0 0 0 3px rgba(0, 212, 255, 0.1);
}

.input::placeholder {
    color: var(--text-muted);
}

.button-group {
    display: flex;
    gap: 12px;
    margin-top: 8px;
}

.btn {
    display: flex;
    align-items: center;
    justify-content: center;
    gap: 8px;
    padding: 12px 24px;
    border-radius: 8px;
    font-size: 14px;
    font-weight: 600;
    border: none;
    cursor: pointer;
    transition: all 0.2s ease;
}

.btn:disabled {
    opacity: 0.5;
    cursor: not-allowed;
}

.btn-primary {
    background: linear-gradient(135deg, var(--accent-primary), var(--accent-secondary));
    color: white;
}

.btn-primary:hover:not(:disabled) {
    transform: translateY(-2px);
    box-shadow: 0 4px 20px rgba(0, 212, 255, 0.3);
}

.btn-small {
    padding: 8px 16px;
    font-size: 12px;
    background: var(--bg-tertiary);
    border: 1px solid var(--border-color);
    color: var(--text-secondary);
}

.btn-small:hover {
    background: var(--bg-secondary);
    color: var(--text-primary);
}

.stats-grid {
    display: grid;
    grid-template-columns: repeat(6, 1fr);
    gap: 16px;
    margin-bottom: 24px;
}

.stat-card {
    display: flex;
    align-items: center;
    gap: 16px;
    padding: 20px;
}

.stat-content {
    display: flex;
    flex-direction: column;
}

.stat-value {
    font-size: 24px;
    font-weight: 700;
    font-family: var(--font-mono);
    color: var(--text-primary);
}

.stat-label {
    font-size: 12px;
    color: var(--text-muted);
    margin-top: 4px;
}

.pair-card {
    border-color: rgba(124, 58, 237, 0.3);
    background: rgba(124, 58, 237, 0.05);
}

.pair-card .stat-value {
    color: var(--accent-secondary);
}

/* Log Container */
.log-container {
    max-height: 400px;
    overflow-y: auto;
    font-family: var(--font-mono);
    font-size: 12px;
}

.log-placeholder {
    display: flex;
    flex-direction: column;
    align-items: center;
    justify-content: center;
    padding: 48px;
    color: var(--text-muted);
}

.placeholder-text {
    font-size: 14px;
}

.log-entry {
    display: flex;
    gap: 12px;
    padding: 8px 12px;
    border-radius: 6px;
    margin-bottom: 4px;
    background: var(--bg-tertiary);
    align-items: center;
}

.log-entry.pair {
    border-left: 3px solid var(--accent-secondary);
    background: rgba(124, 58, 237, 0.1);
}

.log-time {
    color: var(--text-muted);
    min-width: 80px;
}

.log-label {
    flex: 1;
    overflow: hidden;
    text-overflow: ellipsis;
    white-space: nowrap;
}

.log-count {
    min-width: 40px;
    text-align: center;
    padding: 2px 8px;
    border-radius: 4px;
    font-weight: 600;
    background: rgba(124, 58, 237, 0.2);
    color: var(--accent-secondary);
}

/* Last result */
.query-display {
    display: block;
    padding: 16px;
    background: var(--bg-tertiary);
    border-radius: 8px;
    font-family: var(--font-mono);
    font-size: 14px;
    color: var(--accent-primary);
    word-break: break-all;
    white-space: pre-wrap;
}

/* Scrollbar */
::-webkit-scrollbar {
    width: 8px;
    height: 8px;
}

::-webkit-scrollbar-track {
    background: var(--bg-tertiary);
    border-radius: 4px;
}

::-webkit-scrollbar-thumb {
    background: var(--border-color);
    border-radius: 4px;
}

::-webkit-scrollbar-thumb:hover {
    background: var(--text-muted);
}

/* Responsive */
@media (max-width: 1400px) {
    .stats-grid {
        grid-template-columns: repeat(3, 1fr);
    }
}

@media (max-width: 1024px) {
    .stats-grid {
        grid-template-columns: repeat(2, 1fr);
    }
}`

const dashboardJS = `// lshkit dashboard

class LshkitDashboard {
    constructor() {
        this.ws = null;
        this.elements = {
            statusIndicator: document.getElementById('status-indicator'),
            documentsIndexed: document.getElementById('documents-indexed'),
            pairsFound: document.getElementById('pairs-found'),
            bandsRows: document.getElementById('bands-rows'),
            nSamples: document.getElementById('n-samples'),
            threshold: document.getElementById('threshold'),
            elapsedTime: document.getElementById('elapsed-time'),
            logContainer: document.getElementById('log-container'),
            lastResult: document.getElementById('last-result'),
            docContent: document.getElementById('doc-content'),
            insertBtn: document.getElementById('insert-btn'),
            queryBtn: document.getElementById('query-btn'),
            clearLogs: document.getElementById('clear-logs'),
        };
        this.init();
    }

    init() {
        this.bindEvents();
        this.connectWebSocket();
        this.fetchStats();
    }

    bindEvents() {
        this.elements.insertBtn.addEventListener('click', () => this.submit('/api/insert'));
        this.elements.queryBtn.addEventListener('click', () => this.submit('/api/query'));
        this.elements.clearLogs.addEventListener('click', () => {
            this.elements.logContainer.innerHTML = '<div class="log-placeholder"><span class="placeholder-text">Waiting for inserts...</span></div>';
        });
    }

    connectWebSocket() {
        const protocol = window.location.protocol === 'https:' ? 'wss:' : 'ws:';
        this.ws = new WebSocket(protocol + '//' + window.location.host + '/ws');

        this.ws.onmessage = (event) => {
            const msg = JSON.parse(event.data);
            this.handleMessage(msg);
        };

        this.ws.onclose = () => {
            setTimeout(() => this.connectWebSocket(), 2000);
        };
    }

    handleMessage(msg) {
        if (msg.type === 'stats') {
            this.updateStats(msg.data);
        } else if (msg.type === 'pair') {
            this.addPair(msg.data);
        }
    }

    async fetchStats() {
        const res = await fetch('/api/stats');
        if (res.ok) {
            this.updateStats(await res.json());
        }
    }

    updateStats(stats) {
        this.elements.documentsIndexed.textContent = this.formatNumber(stats.documentsIndexed);
        this.elements.pairsFound.textContent = this.formatNumber(stats.pairsFound);
        this.elements.bandsRows.textContent = stats.bands + '/' + stats.rows;
        this.elements.nSamples.textContent = stats.nSamples;
        this.elements.threshold.textContent = stats.threshold;
        this.elements.elapsedTime.textContent = Math.round(stats.elapsedSeconds) + 's';
    }

    addPair(pair) {
        if (this.elements.logContainer.querySelector('.log-placeholder')) {
            this.elements.logContainer.innerHTML = '';
        }

        const time = new Date().toLocaleTimeString();
        const entry = document.createElement('div');
        entry.className = 'log-entry pair';
        entry.innerHTML =
            '<span class="log-time">' + time + '</span>' +
            '<span class="log-label">query ' + pair.query + ' -> [' + pair.neighbors.join(', ') + ']</span>' +
            '<span class="log-count">' + pair.neighbors.length + '</span>';

        this.elements.logContainer.insertBefore(entry, this.elements.logContainer.firstChild);
    }

    async submit(path) {
        const content = this.elements.docContent.value;
        if (!content) {
            return;
        }

        const res = await fetch(path, {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: JSON.stringify({content}),
        });

        const data = await res.json();
        this.elements.lastResult.textContent = JSON.stringify(data, null, 2);

        if (path === '/api/insert') {
            this.fetchStats();
        }
    }

    formatNumber(n) {
        if (n < 1000) return String(n);
        if (n < 1000000) return (n / 1000).toFixed(1) + 'K';
        return (n / 1000000).toFixed(1) + 'M';
    }
}

document.addEventListener('DOMContentLoaded', () => {
    window.dashboard = new LshkitDashboard();
});
`
