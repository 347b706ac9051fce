package server

import (
	"fmt"
	"net/http"

	"github.com/launchdash/launchdash/internal/binding"
)

// handleDashboardJS serves the script that keeps the charts in sync with
// the dropdown and slider.
func (s *Server) handleDashboardJS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Write([]byte(GenerateDashboardScript()))
}

// GenerateDashboardScript returns the page script. Each input change posts
// the full selection and the changed input id to /api/update and swaps in
// the returned charts.
func GenerateDashboardScript() string {
	return fmt.Sprintf(`(function(){
  var root=document.getElementById('dashboard');
  if(!root)return;

  var state={
    site:root.dataset.site,
    payload:[parseFloat(root.dataset.low),parseFloat(root.dataset.high)]
  };

  var dropdown=document.getElementById('%[1]s');
  var low=document.getElementById('payload-low');
  var high=document.getElementById('payload-high');
  var label=document.getElementById('payload-value');
  var errorBox=document.getElementById('error');
  var pending=null;

  function showError(msg){
    errorBox.textContent=msg;
    errorBox.hidden=!msg;
  }

  function update(changed){
    if(pending)pending.abort();
    pending=new AbortController();
    fetch('/api/update',{
      method:'POST',
      headers:{'Content-Type':'application/json'},
      body:JSON.stringify({changed:changed,site:state.site,payload:state.payload}),
      signal:pending.signal
    }).then(function(res){
      return res.json().then(function(body){return {ok:res.ok,body:body};});
    }).then(function(r){
      if(!r.ok){showError(r.body.error||'Update failed');return;}
      showError('');
      Object.keys(r.body.outputs).forEach(function(id){
        var el=document.getElementById(id);
        if(!el)return;
        var out=r.body.outputs[id];
        el.innerHTML=out.empty?'<div class="empty">No launches match this selection</div>':out.svg;
      });
    }).catch(function(err){
      if(err.name!=='AbortError')showError('Update failed');
    });
  }

  dropdown.addEventListener('change',function(){
    state.site=dropdown.value;
    update('%[1]s');
  });

  // Only the handle that moved is read back: the browser snaps range
  // values to the step, and the other bound must keep its exact value.
  function onSlide(handle,index){
    return function(){
      var p=state.payload.slice();
      p[index]=parseFloat(handle.value);
      if(p[0]>p[1])p=[p[1],p[0]];
      state.payload=p;
      label.textContent=p[0]+' - '+p[1];
      update('%[2]s');
    };
  }
  low.addEventListener('change',onSlide(low,0));
  high.addEventListener('change',onSlide(high,1));
})();
`, binding.InputSite, binding.InputPayload)
}
