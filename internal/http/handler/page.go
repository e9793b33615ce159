package handler

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"webnote/internal/model"
)

// notePage is the server-rendered editor page. The textarea holds the raw
// note content; Markdown preview, history, and QR sharing run client-side.
var notePage = template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>webnote · {{.ID}}</title>
    <link rel="shortcut icon" href="/favicon.ico">
    <link rel="stylesheet" href="/styles.css">
    <meta name="description" content="📔 {{.Excerpt}}">
    <script src="/js/qrcode.min.js"></script>
    <script src="/js/clipboard.min.js"></script>
    <script src="/js/marked.min.js"></script>
    <script src="/js/mousetrap.min.js"></script>
</head>
<body>
    <div id="sidebar" class="sidebar">
        <script src="/history.js"></script>
        <span class="close-btn" onclick="toggleSidebar()">&times;</span>
        <h3>Recent Notes</h3>
        <ul id="history-list"></ul>
    </div>
    <div class="container">
        <div id="qrcodePopup">
            <div id="qrcode"></div>
        </div>
        <textarea class="mousetrap" id="content" spellcheck="false" autocapitalize="off" autocomplete="off" autocorrect="off">{{.Content}}</textarea>
        <button id="clippy" class="btn">
            <img src="/clippy.svg" alt="Copy to clipboard" style="width: 12px; height: 16px;">
        </button>
        <div id="markdown-content" style="display: none"></div>
        <div class="link">
            <a href="/">💡 new &nbsp;|&nbsp;</a>
            <a href="#" id="renderMarkdown">note/{{.ID}}&nbsp;<label id="renderStatus" style="cursor: pointer">🔓</label></a>
            <a href="#" id="showQRCode" class="copyBtn">&nbsp; | &nbsp;🔗 share</a>
            <a href="#" id="showHistory" class="showHistory">&nbsp; | &nbsp;📜 history</a>
            <a href="#" id="uploadTrigger">&nbsp; | &nbsp;⤴ upload</a>
        </div>
    </div>
    <pre id="printable"></pre>
    <div id="qrcode"></div>
    <script src="/markdown.js"></script>
    <script src="/copy.js"></script>
    <script src="/script.js"></script>
    <input type="file" id="fileInput" style="display:none" />
    <script>
    (function(){
      var el = document.getElementById('uploadTrigger');
      var input = document.getElementById('fileInput');
      var ta = document.getElementById('content');
      if(el && input && ta){
        el.addEventListener('click', function(e){ e.preventDefault(); input.click(); });
        input.addEventListener('change', async function(){
          if(!input.files || input.files.length === 0) return;
          var f = input.files[0];
          var fd = new FormData();
          fd.append('file', f);
          try{
            showNotification('uploading...');
            var resp = await fetch('/upload', { method: 'POST', body: fd });
            if(!resp.ok){ showNotification('upload failed'); return; }
            var data = await resp.json();
            var cursorPos = ta.selectionStart || 0;
            var before = ta.value.substring(0, cursorPos);
            var after = ta.value.substring(cursorPos);
            var insert = '';
            if(data.is_image){
              insert = '![](' + data.url + ')';
            } else {
              insert = '[' + (data.name || 'attachment') + '](' + data.url + ')';
            }
            ta.value = before + insert + after;
            ta.selectionStart = ta.selectionEnd = cursorPos + insert.length;
            ta.focus();
            showNotification('uploaded');
          }catch(e){
            showNotification('upload error');
          }finally{
            input.value = '';
          }
        });
      }
    })();
    </script>
</body>
</html>
`))

// notePageData is the template input; html/template escapes Content and
// Excerpt, so raw note bytes are safe to inject.
type notePageData struct {
	ID      string
	Content string
	Excerpt string
}

const excerptLength = 150

// excerpt returns the first n runes of s, with an ellipsis when truncated.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// renderNotePage writes the editor page for the given note.
func renderNotePage(c *fiber.Ctx, note *model.Note) error {
	content := string(note.Content)
	var buf bytes.Buffer
	if err := notePage.Execute(&buf, notePageData{
		ID:      note.ID,
		Content: content,
		Excerpt: excerpt(content, excerptLength),
	}); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
