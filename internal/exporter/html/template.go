package html

// RunReportTemplate renders one cleaning run: stage statistics followed by
// the sheets that need review and the sheets that were cleaned without loss
const RunReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Cell Recon Report - {{.Date}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #2e7d32 0%, #1b5e20 100%);
            color: white;
            padding: 40px 20px;
            margin-bottom: 30px;
            border-radius: 8px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        header h1 {
            font-size: 2.5em;
            margin-bottom: 10px;
        }

        header p {
            font-size: 1.1em;
            opacity: 0.9;
        }

        .summary, .section {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .summary h2, .section h2 {
            color: #2e7d32;
            margin-bottom: 15px;
            font-size: 1.5em;
        }

        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 15px;
            margin-top: 15px;
        }

        .stat-card {
            background: #f8f9fa;
            padding: 15px;
            border-radius: 6px;
            border-left: 4px solid #2e7d32;
        }

        .stat-card .label {
            font-size: 0.9em;
            color: #6c757d;
            margin-bottom: 5px;
        }

        .stat-card .value {
            font-size: 1.8em;
            font-weight: bold;
            color: #2c3e50;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 20px;
        }

        th {
            background: #f8f9fa;
            padding: 12px;
            text-align: left;
            font-weight: 600;
            color: #495057;
            border-bottom: 2px solid #dee2e6;
        }

        td {
            padding: 12px;
            border-bottom: 1px solid #e9ecef;
        }

        tr:hover {
            background: #f8f9fa;
        }

        .sheet-name {
            font-family: 'Courier New', monospace;
            font-weight: 600;
        }

        .status-badge {
            display: inline-block;
            padding: 2px 8px;
            border-radius: 3px;
            font-size: 0.85em;
            font-weight: bold;
            text-transform: uppercase;
        }

        .status-success { background: #49cc90; color: white; }
        .status-skipped { background: #6c757d; color: white; }
        .status-failed { background: #f93e3e; color: white; }
        .status-default { background: #adb5bd; color: white; }

        .lost {
            color: #e65100;
            font-weight: 600;
        }

        .empty {
            text-align: center;
            padding: 30px 20px;
            color: #6c757d;
        }

        footer {
            text-align: center;
            padding: 30px 20px;
            color: #6c757d;
            margin-top: 40px;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Cell Recon Report</h1>
            <p>Run {{.RunID}} · {{.Date}}</p>
        </header>

        <div class="summary">
            <h2>Overview</h2>
            <div class="stats">
                <div class="stat-card">
                    <div class="label">Sheet Results</div>
                    <div class="value">{{.TotalSheets}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">Failed</div>
                    <div class="value">{{.TotalFailed}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">Needs Review</div>
                    <div class="value">{{len .Attention}}</div>
                </div>
            </div>
        </div>

        <div class="section">
            <h2>Stages</h2>
            {{if .Stages}}
            <table>
                <thead>
                    <tr>
                        <th>Stage</th>
                        <th>Sheets</th>
                        <th>Succeeded</th>
                        <th>Skipped</th>
                        <th>Failed</th>
                        <th>Rows</th>
                        <th>Mean / Median / Max</th>
                        <th>Time</th>
                        <th>Output</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Stages}}
                    <tr>
                        <td class="sheet-name">{{.Stage}}</td>
                        <td>{{.Total}}</td>
                        <td>{{.Succeeded}}</td>
                        <td>{{.Skipped}}</td>
                        <td>{{.Failed}}</td>
                        <td>{{.RowsTotal}}</td>
                        <td>{{.RowsMean}} / {{.RowsMedian}} / {{.RowsMax}}</td>
                        <td>{{seconds .Duration}}</td>
                        <td>{{.Output}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
            {{else}}
            <div class="empty">No stage was run</div>
            {{end}}
        </div>

        <div class="section">
            <h2>Needs Review</h2>
            {{if .Attention}}
            <table>
                <thead>
                    <tr>
                        <th>Stage</th>
                        <th>Sheet</th>
                        <th>Status</th>
                        <th>Moved</th>
                        <th>Discarded</th>
                        <th>Unreconciled</th>
                        <th>Reason</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Attention}}
                    <tr>
                        <td>{{.Stage}}</td>
                        <td class="sheet-name">{{.Sheet}}</td>
                        <td><span class="status-badge {{statusClass .Status}}">{{.Status}}</span></td>
                        <td>{{.Moved}}</td>
                        <td class="{{if .Discarded}}lost{{end}}">{{.Discarded}}</td>
                        <td class="{{if .Unreconciled}}lost{{end}}">{{.Unreconciled}}</td>
                        <td>{{.Reason}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
            {{else}}
            <div class="empty">Every sheet was cleaned without losing values</div>
            {{end}}
        </div>

        {{if .Clean}}
        <div class="section">
            <h2>Cleaned Sheets</h2>
            <table>
                <thead>
                    <tr>
                        <th>Stage</th>
                        <th>Sheet</th>
                        <th>Rows</th>
                        <th>Columns</th>
                        <th>Moved</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Clean}}
                    <tr>
                        <td>{{.Stage}}</td>
                        <td class="sheet-name">{{.Sheet}}</td>
                        <td>{{.Rows}}</td>
                        <td>{{.ColumnsIn}} → {{.ColumnsOut}}</td>
                        <td>{{.Moved}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>
        {{end}}

        <footer>
            <p>Generated by <strong>Cell Recon</strong></p>
            <p>Merged-cell header reconciliation for Excel workbooks</p>
        </footer>
    </div>
</body>
</html>
`
