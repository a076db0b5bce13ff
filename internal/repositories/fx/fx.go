package fx

import (
	"github.com/orgball2608/social-post-scheduler/internal/repositories/facebookpage"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/instagramaccount"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/linkedinaccount"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/post"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
	facebookpage.Module,
	instagramaccount.Module,
	linkedinaccount.Module,
)
