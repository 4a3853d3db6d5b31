package sqlinline

const QEnqueueRenderJob = `--sql 2febebb8-478f-4a8f-bc4b-a5c1d26c31d3
insert into render_jobs(id, order_item_id, status, attempts, created_at, updated_at)
values ($1::uuid, $2::uuid, 'QUEUED', 0, now(), now())
on conflict (order_item_id) do nothing;
`

const QWorkerClaimRenderJob = `--sql 1e119520-f544-4df3-bc88-904e8e971028
with next_job as (
    select id
    from render_jobs
    where status = 'QUEUED'
    order by created_at asc
    for update skip locked
    limit 1
),
updated as (
    update render_jobs
    set status = 'RUNNING', attempts = attempts + 1, updated_at = now()
    where id in (select id from next_job)
    returning id, order_item_id, attempts
)
select * from updated;
`

const QFinishRenderJob = `--sql 36317b27-bf0b-49b4-8291-14e89ed46cd8
update render_jobs
set status = $2::text,
    error_message = nullif($3::text, ''),
    skipped_slots = $4::jsonb,
    updated_at = now()
where id = $1::uuid;
`

const QSelectRenderItem = `--sql 2040006c-62fd-4ede-97c4-42c2ade23a1a
select
  oi.id,
  oi.order_id,
  oi.quantity,
  oi.slot_images,
  l.id,
  l.base_image_key,
  l.base_width,
  l.base_height,
  l.slots,
  p.name,
  o.customer_name,
  o.customer_phone,
  o.locale
from order_items oi
join layouts l on l.id = oi.layout_id
join products p on p.id = oi.product_id
join orders o on o.id = oi.order_id
where oi.id = $1::uuid
limit 1;
`

const QInsertComposedAsset = `--sql d0a08e99-02e8-445d-9993-cd4eaa131e80
insert into composed_assets(
  id,
  order_item_id,
  kind,
  storage_key,
  mime,
  bytes,
  width,
  height,
  created_at
) values (
  $1::uuid,
  $2::uuid,
  $3::text,
  $4::text,
  $5::text,
  $6::bigint,
  $7::int,
  $8::int,
  now()
);
`

const QSelectComposedAssets = `--sql 61e5443a-d125-479f-87ca-814f8dbe2653
select id, order_item_id, kind, storage_key, mime, bytes, width, height, created_at
from composed_assets
where order_item_id = $1::uuid
order by created_at asc;
`
